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

// ChannelSinkNode is a worker at the end of a chain that drains elements into
// a Go channel. If CloseOnComplete is set the channel is closed when the
// worker stops, signaling the consumer that no more elements will arrive.
type ChannelSinkNode struct {
	Name            string
	C               chan<- any
	CloseOnComplete bool

	base   subNodeBase
	logger log.CtxLogger
}

func (n *ChannelSinkNode) ID() string {
	return n.Name
}

func (n *ChannelSinkNode) Run(ctx context.Context) error {
	trigger, cleanup, err := n.base.Trigger(ctx, n.logger, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	if n.CloseOnComplete {
		defer close(n.C)
	}

	for {
		msg, err := trigger()
		if err != nil || msg == nil {
			return err
		}

		select {
		case <-ctx.Done():
			n.logger.Debug(msg.Ctx).Msg("context closed while draining message")
			return ctx.Err()
		case n.C <- msg.Element:
			n.logger.Trace(msg.Ctx).Msg("drained message into sink channel")
		}
	}
}

func (n *ChannelSinkNode) Sub(in <-chan *Message) {
	n.base.Sub(in)
}

func (n *ChannelSinkNode) SetLogger(logger log.CtxLogger) {
	n.logger = logger
}
