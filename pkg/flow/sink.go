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

package flow

import (
	"context"

	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/log"
	"github.com/weftio/weft/pkg/stream"
)

// Sink is a flow's output endpoint. Every implementation must additionally
// satisfy exactly one of SimpleSink or SinkWithKey, a sink satisfying
// neither fails materialization with ErrUnknownEndpointType.
type Sink interface {
	// SinkName identifies the endpoint in worker names and diagnostics.
	SinkName() string
	// Active reports whether the sink can produce its subscribing side on
	// its own, without being wired into an existing chain. Create is only
	// supported on active sinks.
	Active() bool
}

// SimpleSink is a sink whose materialization yields no value.
type SimpleSink interface {
	Sink

	// Attach connects the publisher side of pub to the sink's input.
	Attach(ctx context.Context, mat *Materializer, flowName string, pub *Worker) error
	// Create materializes the sink's own subscribing worker. It fails with
	// ErrEndpointNotActive for sinks that are not active.
	Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, error)
}

// SinkWithKey is a sink whose materialization yields a value that is
// returned to the flow's caller.
type SinkWithKey interface {
	Sink

	// Attach connects the publisher side of pub to the sink's input and
	// returns the sink's materialized value.
	Attach(ctx context.Context, mat *Materializer, flowName string, pub *Worker) (any, error)
	// Create materializes the sink's own subscribing worker alongside the
	// sink's materialized value.
	Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, any, error)
}

// ForEachSink invokes a callback for every element reaching the end of the
// flow. It is passive, the elements are drained from the chain by a plain
// goroutine instead of a dedicated worker. A callback error stops further
// invocations, remaining elements are discarded so the chain can finish.
type ForEachSink struct {
	Name string
	Fn   func(ctx context.Context, element any) error
}

var _ SimpleSink = ForEachSink{}

func (s ForEachSink) SinkName() string { return s.Name }
func (s ForEachSink) Active() bool     { return false }

func (s ForEachSink) Attach(ctx context.Context, mat *Materializer, flowName string, pub *Worker) error {
	out := pub.Pub()

	go func() {
		for msg := range out {
			err := s.Fn(msg.Ctx, msg.Element)
			if err != nil {
				mat.logger.Err(msg.Ctx, err).
					Str(log.FlowNameField, flowName).
					Msg("sink callback failed, discarding remaining elements")
				for range out { //nolint:revive // drain so upstream workers can finish
				}
				return
			}
		}
	}()
	return nil
}

func (s ForEachSink) Create(context.Context, *Materializer, string) (*Worker, error) {
	return nil, cerrors.Errorf("sink %s: %w", s.Name, ErrEndpointNotActive)
}

// ChannelSink drains elements into a caller-owned Go channel. It is active,
// it runs as its own worker. The channel is left open when the flow
// completes since the caller owns it.
type ChannelSink struct {
	Name string
	C    chan<- any
}

var _ SimpleSink = ChannelSink{}

func (s ChannelSink) SinkName() string { return s.Name }
func (s ChannelSink) Active() bool     { return true }

func (s ChannelSink) Attach(ctx context.Context, mat *Materializer, flowName string, pub *Worker) error {
	w, err := s.Create(ctx, mat, flowName)
	if err != nil {
		return err
	}
	w.Sub(pub.Pub())
	return nil
}

func (s ChannelSink) Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, error) {
	name := flowName + "-sink-" + s.Name
	return mat.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
		return &stream.ChannelSinkNode{Name: name, C: s.C}
	}}, name)
}

// PipeSink materializes a read channel the flow's caller receives elements
// from. The materialized value is a <-chan any, it is closed once the flow
// completes.
type PipeSink struct {
	Name string
	// Buffer is the capacity of the materialized channel. Zero means the
	// flow blocks until the caller is ready for the next element.
	Buffer int
}

var _ SinkWithKey = PipeSink{}

func (s PipeSink) SinkName() string { return s.Name }
func (s PipeSink) Active() bool     { return true }

func (s PipeSink) Attach(ctx context.Context, mat *Materializer, flowName string, pub *Worker) (any, error) {
	w, val, err := s.Create(ctx, mat, flowName)
	if err != nil {
		return nil, err
	}
	w.Sub(pub.Pub())
	return val, nil
}

func (s PipeSink) Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, any, error) {
	ch := make(chan any, s.Buffer)
	name := flowName + "-sink-" + s.Name
	w, err := mat.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
		return &stream.ChannelSinkNode{Name: name, C: ch, CloseOnComplete: true}
	}}, name)
	if err != nil {
		return nil, nil, err
	}
	return w, (<-chan any)(ch), nil
}
