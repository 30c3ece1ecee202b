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

// Source is a flow's input endpoint. Every implementation must additionally
// satisfy exactly one of SimpleSource or SourceWithKey, a source satisfying
// neither fails materialization with ErrUnknownEndpointType.
type Source interface {
	// SourceName identifies the endpoint in worker names and diagnostics.
	SourceName() string
	// Active reports whether the source can produce its publishing side on
	// its own, without being wired into an existing chain. Create is only
	// supported on active sources.
	Active() bool
}

// SimpleSource is a source whose materialization yields no value.
type SimpleSource interface {
	Source

	// Attach connects the source's output to the subscriber side of sub.
	Attach(ctx context.Context, mat *Materializer, flowName string, sub *Worker) error
	// Create materializes the source's own publishing worker. It fails with
	// ErrEndpointNotActive for sources that are not active.
	Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, error)
}

// SourceWithKey is a source whose materialization yields a value that is
// returned to the flow's caller.
type SourceWithKey interface {
	Source

	// Attach connects the source's output to the subscriber side of sub and
	// returns the source's materialized value.
	Attach(ctx context.Context, mat *Materializer, flowName string, sub *Worker) (any, error)
	// Create materializes the source's own publishing worker alongside the
	// source's materialized value.
	Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, any, error)
}

// SliceSource emits a fixed sequence of elements and then completes. It is
// passive, the elements are pushed into an existing chain by a plain
// goroutine instead of a dedicated worker.
type SliceSource struct {
	Name     string
	Elements []any
}

var _ SimpleSource = SliceSource{}

func (s SliceSource) SourceName() string { return s.Name }
func (s SliceSource) Active() bool       { return false }

func (s SliceSource) Attach(ctx context.Context, mat *Materializer, flowName string, sub *Worker) error {
	in := make(chan *stream.Message)
	sub.Sub(in)

	go func() {
		defer close(in)
		for _, e := range s.Elements {
			select {
			case <-ctx.Done():
				mat.logger.Debug(ctx).Str(log.FlowNameField, flowName).Msg("context closed while emitting elements")
				return
			case in <- &stream.Message{Ctx: ctx, Element: e}:
			}
		}
	}()
	return nil
}

func (s SliceSource) Create(context.Context, *Materializer, string) (*Worker, error) {
	return nil, cerrors.Errorf("source %s: %w", s.Name, ErrEndpointNotActive)
}

// ChannelSource pumps elements from a caller-owned Go channel. It is active,
// it runs as its own worker and completes when the channel is closed.
type ChannelSource struct {
	Name string
	C    <-chan any
}

var _ SimpleSource = ChannelSource{}

func (s ChannelSource) SourceName() string { return s.Name }
func (s ChannelSource) Active() bool       { return true }

func (s ChannelSource) Attach(ctx context.Context, mat *Materializer, flowName string, sub *Worker) error {
	w, err := s.Create(ctx, mat, flowName)
	if err != nil {
		return err
	}
	sub.Sub(w.Pub())
	return nil
}

func (s ChannelSource) Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, error) {
	name := flowName + "-source-" + s.Name
	return mat.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
		return &stream.ChannelSourceNode{Name: name, C: s.C}
	}}, name)
}

// PipeSource materializes a write channel the flow's caller pushes elements
// into. The materialized value is a chan<- any, closing it completes the
// flow.
type PipeSource struct {
	Name string
	// Buffer is the capacity of the materialized channel. Zero means writes
	// block until the flow is ready for the next element.
	Buffer int
}

var _ SourceWithKey = PipeSource{}

func (s PipeSource) SourceName() string { return s.Name }
func (s PipeSource) Active() bool       { return true }

func (s PipeSource) Attach(ctx context.Context, mat *Materializer, flowName string, sub *Worker) (any, error) {
	w, val, err := s.Create(ctx, mat, flowName)
	if err != nil {
		return nil, err
	}
	sub.Sub(w.Pub())
	return val, nil
}

func (s PipeSource) Create(ctx context.Context, mat *Materializer, flowName string) (*Worker, any, error) {
	ch := make(chan any, s.Buffer)
	name := flowName + "-source-" + s.Name
	w, err := mat.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
		return &stream.ChannelSourceNode{Name: name, C: ch}
	}}, name)
	if err != nil {
		return nil, nil, err
	}
	return w, (chan<- any)(ch), nil
}
