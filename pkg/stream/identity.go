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

// IdentityNode is a worker that forwards every message unchanged. It is
// synthesized when a flow with no transform stages connects two endpoints
// that can't run on their own.
type IdentityNode struct {
	Name string

	base   pubSubNodeBase
	logger log.CtxLogger
}

func (n *IdentityNode) ID() string {
	return n.Name
}

func (n *IdentityNode) Run(ctx context.Context) error {
	trigger, cleanup, err := n.base.Trigger(ctx, n.logger, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	for {
		msg, err := trigger()
		if err != nil || msg == nil {
			return err
		}
		// forward the message pointer itself, upstream handed it off
		err = n.base.Send(ctx, n.logger, msg)
		if err != nil {
			return err
		}
	}
}

func (n *IdentityNode) Sub(in <-chan *Message) {
	n.base.Sub(in)
}

func (n *IdentityNode) Pub() <-chan *Message {
	return n.base.Pub()
}

func (n *IdentityNode) SetLogger(logger log.CtxLogger) {
	n.logger = logger
}
