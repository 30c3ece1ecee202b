// Copyright © 2024 Weft Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stream

import (
	"context"

	"github.com/weftio/weft/pkg/foundation/log"
)

// Node represents a single worker in a flow that knows how to process
// messages flowing through the chain.
//
// Backpressure is built into the wiring itself: nodes are connected with
// unbuffered channels, so a producer's send blocks until its consumer is
// ready to receive the next message. Completion travels downstream as the
// closing of the outgoing channel.
type Node interface {
	// ID returns the identifier of this Node. Each Node in a flow must be
	// uniquely identified by the ID.
	ID() string

	// Run first verifies if the Node is set up correctly and either returns a
	// descriptive error or starts processing messages. Processing should stop
	// as soon as the supplied context is done. If an error occurs while
	// processing messages, the processing should stop and the error should be
	// returned. If processing stopped because the context was canceled, the
	// function should return ctx.Err().
	// Run has different responsibilities, depending on the node type:
	//  * PubNode has to start producing new messages into the outgoing
	//    channel. The outgoing channel has to be closed when Run returns,
	//    regardless of the return value.
	//  * SubNode has to start listening to messages sent to the incoming
	//    channel. If the incoming channel is closed, then Run should stop and
	//    return nil.
	//  * PubSubNode has to start listening to incoming messages, process them
	//    and forward them to the outgoing channel. If the incoming channel is
	//    closed, then Run should stop and return nil. The outgoing channel
	//    has to be closed when Run returns, regardless of the return value.
	Run(ctx context.Context) error
}

// PubNode represents a node at the start of a chain, which pushes new
// messages to downstream nodes.
type PubNode interface {
	Node

	// Pub returns the outgoing channel, that can be used to connect
	// downstream nodes to PubNode. It is the responsibility of PubNode to
	// close this channel when it stops running (see Node.Run). Pub needs to
	// be called before running a PubNode, otherwise Node.Run will return an
	// error.
	Pub() <-chan *Message
}

// SubNode represents a node at the end of a chain, which listens to incoming
// messages from upstream nodes.
type SubNode interface {
	Node

	// Sub sets the incoming channel, that is used to listen to new messages.
	// Node.Run will listen to messages coming from this channel until the
	// channel is closed. Sub needs to be called before running a SubNode,
	// otherwise Node.Run will return an error.
	Sub(in <-chan *Message)
}

// PubSubNode represents a node in the middle of a chain, located between two
// nodes. It listens to incoming messages from the incoming channel, processes
// them and forwards them to the outgoing channel.
type PubSubNode interface {
	PubNode
	SubNode
}

// LoggingNode is a node which expects a logger.
type LoggingNode interface {
	Node

	// SetLogger sets the logger used by the node for logging.
	SetLogger(log.CtxLogger)
}
