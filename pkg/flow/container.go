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
	"sort"
	"sync"
	"time"

	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/csync"
	"github.com/weftio/weft/pkg/foundation/log"
	"github.com/weftio/weft/pkg/foundation/metrics/measure"
	"github.com/weftio/weft/pkg/stream"
	"gopkg.in/tomb.v2"
)

// ContainerState is used to represent the lifecycle state of a container.
type ContainerState string

const (
	ContainerStateStarting ContainerState = "starting"
	ContainerStateReady    ContainerState = "ready"
)

// WorkerContainer is the runtime entity that owns worker lifecycles and can
// spawn children. Only local containers (*Container) support worker
// creation, the materializer rejects any other implementation.
type WorkerContainer interface {
	// Name identifies the container in logs and metrics.
	Name() string
}

// Container is a local worker container. It starts in the starting state, in
// which direct worker creation is unsafe and creation requests are handed
// off to the container's supervisor. Once Start is called the container is
// ready and creates workers synchronously. All worker goroutines run on the
// container's tomb, one worker failing does not bring down its siblings.
type Container struct {
	name       string
	logger     log.CtxLogger
	t          *tomb.Tomb
	state      *csync.ValueWatcher[ContainerState]
	supervisor *Supervisor

	m        sync.Mutex
	children map[string]*Worker
}

var _ WorkerContainer = (*Container)(nil)

// NewContainer creates a container in the starting state and launches its
// supervisor. The supplied context bounds the lifetime of everything running
// in the container.
func NewContainer(ctx context.Context, name string, logger log.CtxLogger) *Container {
	c := &Container{
		name:     name,
		children: make(map[string]*Worker),
		state:    &csync.ValueWatcher[ContainerState]{},
	}
	c.logger = logger.WithComponentFromType(c)
	c.logger.Logger = c.logger.With().Str(log.ContainerNameField, name).Logger()
	c.state.Set(ContainerStateStarting)
	c.t, _ = tomb.WithContext(ctx)

	c.supervisor = newSupervisor(c)
	c.t.Go(func() error {
		return c.supervisor.Run(c.t.Context(nil)) //nolint:staticcheck // nil used to use the default (parent provided via WithContext)
	})

	return c
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// State returns the current lifecycle state of the container.
func (c *Container) State() ContainerState {
	return c.state.Get()
}

// Start marks the container as fully started. Worker creations that were
// handed off to the supervisor while the container was starting are
// performed now.
func (c *Container) Start() {
	c.state.Set(ContainerStateReady)
	c.logger.Info(context.Background()).Msg("container started")
}

// Children returns the names of all workers spawned in the container, in
// lexicographic order.
func (c *Container) Children() []string {
	c.m.Lock()
	defer c.m.Unlock()

	names := make([]string, 0, len(c.children))
	for name := range c.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Context returns a context that is canceled when the container stops. It
// bounds the lifetime of everything materialized into the container.
func (c *Container) Context() context.Context {
	return c.t.Context(nil) //nolint:staticcheck // nil used to use the default (parent provided via WithContext)
}

// Stop stops the container. The context of all running workers is canceled,
// which causes them to stop as soon as possible. The reason will be returned
// by Wait.
func (c *Container) Stop(reason error) {
	c.t.Kill(reason)
}

// Wait blocks until the container and all its workers stopped or until the
// timeout is reached, in which case ErrTimeout is returned.
func (c *Container) Wait(timeout time.Duration) error {
	select {
	case <-c.t.Dead():
		return c.t.Err()
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// spawn creates a worker as a child of the container under the given name.
// Two workers with the same name in the same container are a programming
// error and fail fatally.
func (c *Container) spawn(spec WorkerSpec, name string) (*Worker, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if _, ok := c.children[name]; ok {
		return nil, cerrors.NewFatalError(
			cerrors.Errorf("container %s already has a child named %s: %w", c.name, name, ErrDuplicateWorkerName),
		)
	}

	node := spec.NewNode()
	stream.SetLogger(node, c.logger)

	_, isSub := node.(stream.SubNode)
	_, isPub := node.(stream.PubNode)
	w := &Worker{
		name:      name,
		node:      node,
		container: c,
		needSub:   isSub,
		needPub:   isPub,
	}
	c.children[name] = w

	c.logger.Debug(context.Background()).Str(log.WorkerNameField, name).Msg("spawned worker")
	return w, nil
}

// runWorker schedules the worker's node on the container's goroutine group.
// A worker error is logged but does not stop the container, failures travel
// through the streaming protocol to the worker's neighbors instead.
func (c *Container) runWorker(w *Worker) {
	c.t.Go(func() error {
		ctx := c.t.Context(nil) //nolint:staticcheck // nil used to use the default (parent provided via WithContext)

		measure.WorkersGauge.WithValues(c.name).Inc()
		defer measure.WorkersGauge.WithValues(c.name).Dec()

		c.logger.Trace(ctx).Str(log.WorkerNameField, w.name).Msg("running worker")
		err := w.node.Run(ctx)

		e := c.logger.Trace(ctx)
		if err != nil && !cerrors.Is(err, context.Canceled) {
			e = c.logger.Err(ctx, err) // increase the log level to error
		}
		e.Str(log.WorkerNameField, w.name).Msg("worker stopped")
		return nil
	})
}
