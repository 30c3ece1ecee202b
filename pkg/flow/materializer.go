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
	"fmt"
	"time"

	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/log"
	"github.com/weftio/weft/pkg/foundation/metrics/measure"
	"github.com/weftio/weft/pkg/stream"
)

// MaterializedFlow is the caller's record of a running flow. SourceValue and
// SinkValue carry whatever the endpoints yielded at materialization time,
// they are nil for endpoints without a materialized value.
type MaterializedFlow struct {
	// Source is the source endpoint the flow was materialized with.
	Source Source
	// SourceValue is the value yielded by the source, e.g. the write channel
	// of a PipeSource.
	SourceValue any
	// Sink is the sink endpoint the flow was materialized with.
	Sink Sink
	// SinkValue is the value yielded by the sink, e.g. the read channel of a
	// PipeSink.
	SinkValue any
}

// Materializer turns flow descriptions into running graphs of workers inside
// a container. It is safe for concurrent use, flows materialized concurrently
// still receive unique names.
type Materializer struct {
	config    Config
	logger    log.CtxLogger
	container WorkerContainer
	namer     *namer
}

// New creates a materializer spawning workers into the given container.
func New(config Config, logger log.CtxLogger, container WorkerContainer) (*Materializer, error) {
	err := config.Validate()
	if err != nil {
		return nil, cerrors.Errorf("invalid materializer config: %w", err)
	}
	m := &Materializer{
		config:    config,
		container: container,
		namer:     newNamer(config.NamePrefix),
	}
	m.logger = logger.WithComponentFromType(m)
	return m, nil
}

// WithNamePrefix returns a materializer that names flows with the given
// prefix. The flow counter is shared with the receiver, so flows created
// through either materializer never collide.
func (m *Materializer) WithNamePrefix(prefix string) *Materializer {
	out := *m
	out.namer = m.namer.WithPrefix(prefix)
	return &out
}

// Materialize brings the flow described by the source, the transform stages
// and the sink to life. Stages are listed sink-first, stages[0] receives its
// elements last. Workers are activated from the sink end towards the source
// so that every worker has a running downstream neighbor the moment it
// starts.
func (m *Materializer) Materialize(ctx context.Context, source Source, stages []Stage, sink Sink) (*MaterializedFlow, error) {
	flowName := m.namer.Next()
	m.logger.Info(ctx).
		Str(log.FlowNameField, flowName).
		Int("stages", len(stages)).
		Msg("materializing flow")

	measure.FlowsCounter.Inc()
	defer func(start time.Time) {
		measure.MaterializeDurationTimer.Update(time.Since(start))
	}(time.Now())

	runCtx := m.runContext(ctx)

	if len(stages) == 0 {
		return m.materializeEmpty(ctx, runCtx, flowName, source, sink)
	}

	// Activate the sink-nearest stage first. Stage i in the description sits
	// at position len(stages)-i counted from the source.
	tail, err := m.activateStage(ctx, flowName, len(stages), stages[0])
	if err != nil {
		return nil, err
	}

	head, err := m.buildChain(ctx, flowName, stages[1:], tail)
	if err != nil {
		return nil, err
	}

	sourceValue, err := m.attachSource(runCtx, source, flowName, head)
	if err != nil {
		return nil, err
	}
	sinkValue, err := m.attachSink(runCtx, sink, flowName, tail)
	if err != nil {
		return nil, err
	}

	return &MaterializedFlow{
		Source:      source,
		SourceValue: sourceValue,
		Sink:        sink,
		SinkValue:   sinkValue,
	}, nil
}

// MaterializeProcessor activates a single transform stage as a standalone
// worker, outside of any flow. The caller is responsible for wiring both of
// the worker's sides, the worker does not run until they are.
func (m *Materializer) MaterializeProcessor(ctx context.Context, stage Stage) (*Worker, error) {
	flowName := m.namer.Next()
	return m.activateStage(ctx, flowName, 0, stage)
}

// buildChain activates the remaining stages back to front and wires each new
// worker's output into the worker activated before it. It returns the head of
// the chain, the worker closest to the source.
func (m *Materializer) buildChain(ctx context.Context, flowName string, stages []Stage, head *Worker) (*Worker, error) {
	index := len(stages)
	for _, stage := range stages {
		w, err := m.activateStage(ctx, flowName, index, stage)
		if err != nil {
			return nil, err
		}
		head.Sub(w.Pub())
		head = w
		index--
	}
	return head, nil
}

// materializeEmpty handles a flow without transform stages. If either
// endpoint is active its worker bridges the two directly, otherwise an
// identity worker is synthesized between the two passive endpoints.
func (m *Materializer) materializeEmpty(ctx context.Context, runCtx context.Context, flowName string, source Source, sink Sink) (*MaterializedFlow, error) {
	var sourceValue, sinkValue any

	switch {
	case sink.Active():
		w, sv, err := m.createSink(runCtx, sink, flowName)
		if err != nil {
			return nil, err
		}
		sinkValue = sv
		sourceValue, err = m.attachSource(runCtx, source, flowName, w)
		if err != nil {
			return nil, err
		}

	case source.Active():
		w, sv, err := m.createSource(runCtx, source, flowName)
		if err != nil {
			return nil, err
		}
		sourceValue = sv
		sinkValue, err = m.attachSink(runCtx, sink, flowName, w)
		if err != nil {
			return nil, err
		}

	default:
		// both endpoints are passive, neither can host the exchange
		w, err := m.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
			return &stream.IdentityNode{Name: flowName + "-0-identity"}
		}}, flowName+"-0-identity")
		if err != nil {
			return nil, err
		}
		sourceValue, err = m.attachSource(runCtx, source, flowName, w)
		if err != nil {
			return nil, err
		}
		sinkValue, err = m.attachSink(runCtx, sink, flowName, w)
		if err != nil {
			return nil, err
		}
	}

	return &MaterializedFlow{
		Source:      source,
		SourceValue: sourceValue,
		Sink:        sink,
		SinkValue:   sinkValue,
	}, nil
}

// activateStage creates the worker for a single stage. The worker name
// encodes the flow, the stage's position counted from the source and the
// stage name.
func (m *Materializer) activateStage(ctx context.Context, flowName string, index int, stage Stage) (*Worker, error) {
	name := fmt.Sprintf("%s-%d-%s", flowName, index, stage.StageName())
	m.logger.Trace(ctx).
		Str(log.FlowNameField, flowName).
		Str(log.StageNameField, stage.StageName()).
		Str(log.WorkerNameField, name).
		Msg("activating stage")

	switch s := stage.(type) {
	case TransformStage:
		return m.createWorker(ctx, WorkerSpec{NewNode: func() stream.Node {
			return &stream.TransformNode{
				Name:     name,
				Behavior: s.NewBehavior(),
				Timer:    measure.TransformExecutionDurationTimer.WithValues(s.Name),
			}
		}}, name)
	case MergeStage:
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("stage %s: merge stages cannot be materialized: %w", s.Name, ErrUnsupportedStage),
		)
	default:
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("stage %s has unknown type %T: %w", stage.StageName(), stage, ErrUnsupportedStage),
		)
	}
}

// attachSource dispatches on the source's capability. Keyed sources are
// checked first since a type satisfies at most one of the two interfaces.
func (m *Materializer) attachSource(ctx context.Context, source Source, flowName string, sub *Worker) (any, error) {
	switch s := source.(type) {
	case SourceWithKey:
		return s.Attach(ctx, m, flowName, sub)
	case SimpleSource:
		return nil, s.Attach(ctx, m, flowName, sub)
	default:
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("source %s has unknown type %T: %w", source.SourceName(), source, ErrUnknownEndpointType),
		)
	}
}

func (m *Materializer) createSource(ctx context.Context, source Source, flowName string) (*Worker, any, error) {
	switch s := source.(type) {
	case SourceWithKey:
		return s.Create(ctx, m, flowName)
	case SimpleSource:
		w, err := s.Create(ctx, m, flowName)
		return w, nil, err
	default:
		return nil, nil, cerrors.NewFatalError(
			cerrors.Errorf("source %s has unknown type %T: %w", source.SourceName(), source, ErrUnknownEndpointType),
		)
	}
}

// attachSink dispatches on the sink's capability, keyed sinks first.
func (m *Materializer) attachSink(ctx context.Context, sink Sink, flowName string, pub *Worker) (any, error) {
	switch s := sink.(type) {
	case SinkWithKey:
		return s.Attach(ctx, m, flowName, pub)
	case SimpleSink:
		return nil, s.Attach(ctx, m, flowName, pub)
	default:
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("sink %s has unknown type %T: %w", sink.SinkName(), sink, ErrUnknownEndpointType),
		)
	}
}

func (m *Materializer) createSink(ctx context.Context, sink Sink, flowName string) (*Worker, any, error) {
	switch s := sink.(type) {
	case SinkWithKey:
		return s.Create(ctx, m, flowName)
	case SimpleSink:
		w, err := s.Create(ctx, m, flowName)
		return w, nil, err
	default:
		return nil, nil, cerrors.NewFatalError(
			cerrors.Errorf("sink %s has unknown type %T: %w", sink.SinkName(), sink, ErrUnknownEndpointType),
		)
	}
}

// createWorker creates a worker in the materializer's container. A ready
// container creates the worker synchronously, a starting one hands the
// request to its supervisor, which performs the creation once the container
// is ready, bounded by the configured creation timeout.
func (m *Materializer) createWorker(ctx context.Context, spec WorkerSpec, name string) (*Worker, error) {
	switch c := m.container.(type) {
	case *Container:
		switch state := c.State(); state {
		case ContainerStateReady:
			return c.spawn(spec, name)
		case ContainerStateStarting:
			m.logger.Debug(ctx).
				Str(log.WorkerNameField, name).
				Msg("container still starting, deferring worker creation to supervisor")
			return c.supervisor.CreateWorker(ctx, spec, name, m.config.CreationTimeout)
		default:
			return nil, cerrors.NewFatalError(
				cerrors.Errorf("container %s is in unexpected state %q: %w", c.Name(), state, ErrUnsupportedContainer),
			)
		}
	default:
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("container %s has unsupported type %T: %w", m.container.Name(), m.container, ErrUnsupportedContainer),
		)
	}
}

// runContext returns the context the flow's runtime pieces are bound to. For
// a local container that is the container's own context, so flows outlive the
// materialization call and stop together with the container.
func (m *Materializer) runContext(ctx context.Context) context.Context {
	if c, ok := m.container.(*Container); ok {
		return c.Context()
	}
	return ctx
}
