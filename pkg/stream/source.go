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

// ChannelSourceNode is a worker at the start of a chain that pumps elements
// from a Go channel into the chain. It completes when the channel is closed.
type ChannelSourceNode struct {
	Name string
	C    <-chan any

	base   pubNodeBase
	logger log.CtxLogger
}

func (n *ChannelSourceNode) ID() string {
	return n.Name
}

func (n *ChannelSourceNode) Run(ctx context.Context) error {
	trigger, cleanup, err := n.base.Trigger(ctx, n.logger, nil, n.fetch)
	if err != nil {
		return err
	}
	defer cleanup()

	for {
		msg, err := trigger()
		if err != nil || msg == nil {
			return err
		}
		err = n.base.Send(ctx, n.logger, msg)
		if err != nil {
			return err
		}
	}
}

func (n *ChannelSourceNode) fetch(ctx context.Context) ([]*Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case e, ok := <-n.C:
		if !ok {
			// channel closed, the source is exhausted
			return nil, nil
		}
		return []*Message{{Ctx: ctx, Element: e}}, nil
	}
}

func (n *ChannelSourceNode) Pub() <-chan *Message {
	return n.base.Pub()
}

func (n *ChannelSourceNode) SetLogger(logger log.CtxLogger) {
	n.logger = logger
}
