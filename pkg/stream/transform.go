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

//go:generate mockgen -typed=false -destination=mock/behavior.go -package=mock -mock_names=Behavior=Behavior . Behavior

package stream

import (
	"context"
	"time"

	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/log"
	"github.com/weftio/weft/pkg/foundation/metrics"
)

// Behavior is the processing logic of a single transform worker. A Behavior
// instance belongs to exactly one worker and may keep internal state between
// calls, the stream layer never shares it across workers.
type Behavior interface {
	// OnNext processes a single element and returns zero or more elements to
	// emit downstream. Returning an error stops the worker and fails the
	// chain.
	OnNext(ctx context.Context, element any) ([]any, error)

	// OnComplete is called exactly once after the upstream completed. It
	// gives the behavior a chance to flush any buffered elements before the
	// worker stops.
	OnComplete(ctx context.Context) ([]any, error)
}

// TransformNode is a worker that runs a Behavior on every element flowing
// through it.
type TransformNode struct {
	Name     string
	Behavior Behavior
	Timer    metrics.Timer

	base   pubSubNodeBase
	logger log.CtxLogger
}

func (n *TransformNode) ID() string {
	return n.Name
}

func (n *TransformNode) Run(ctx context.Context) error {
	trigger, cleanup, err := n.base.Trigger(ctx, n.logger, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	for {
		msg, err := trigger()
		if err != nil {
			return err
		}
		if msg == nil {
			// upstream completed, let the behavior flush
			return n.complete(ctx)
		}

		executeTime := time.Now()
		elements, err := n.Behavior.OnNext(msg.Ctx, msg.Element)
		if n.Timer != nil {
			n.Timer.Update(time.Since(executeTime))
		}
		if err != nil {
			return cerrors.Errorf("transform %s failed to process element: %w", n.Name, err)
		}

		for _, e := range elements {
			err := n.base.Send(ctx, n.logger, &Message{Ctx: msg.Ctx, Element: e})
			if err != nil {
				return err
			}
		}
	}
}

func (n *TransformNode) complete(ctx context.Context) error {
	elements, err := n.Behavior.OnComplete(ctx)
	if err != nil {
		return cerrors.Errorf("transform %s failed to complete: %w", n.Name, err)
	}
	for _, e := range elements {
		err := n.base.Send(ctx, n.logger, &Message{Ctx: ctx, Element: e})
		if err != nil {
			return err
		}
	}
	return nil
}

func (n *TransformNode) Sub(in <-chan *Message) {
	n.base.Sub(in)
}

func (n *TransformNode) Pub() <-chan *Message {
	return n.base.Pub()
}

func (n *TransformNode) SetLogger(logger log.CtxLogger) {
	n.logger = logger
}
