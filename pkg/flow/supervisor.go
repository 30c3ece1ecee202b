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
	"time"

	"github.com/gammazero/deque"
	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/csync"
	"github.com/weftio/weft/pkg/foundation/log"
)

// createRequest asks the supervisor to create a worker on the requester's
// behalf once the container finished starting.
type createRequest struct {
	spec  WorkerSpec
	name  string
	reply chan createReply
}

type createReply struct {
	worker *Worker
	err    error
}

// Supervisor is a long-lived loop that performs worker creation on behalf of
// callers for which direct creation is unsafe, because the owning container
// has not finished starting yet. Each request is handled independently, the
// supervisor keeps no state besides the queue of requests that arrived
// before the container became ready.
type Supervisor struct {
	container *Container
	requests  chan createRequest
}

func newSupervisor(c *Container) *Supervisor {
	return &Supervisor{
		container: c,
		requests:  make(chan createRequest),
	}
}

// Run receives creation requests until ctx is done. Requests arriving while
// the container is still starting are queued and drained in arrival order
// the moment the container becomes ready, afterwards requests are handled as
// they come in.
func (s *Supervisor) Run(ctx context.Context) error {
	ready := make(chan struct{})
	go func() {
		_, err := s.container.state.Watch(ctx, csync.WatchValues(ContainerStateReady))
		if err != nil {
			// context canceled, Run stops through ctx.Done
			return
		}
		close(ready)
	}()

	var pending deque.Deque[createRequest]
	for {
		select {
		case <-ctx.Done():
			for pending.Len() > 0 {
				req := pending.PopFront()
				req.reply <- createReply{err: ctx.Err()}
			}
			return nil
		case req := <-s.requests:
			pending.PushBack(req)
		case <-ready:
			for pending.Len() > 0 {
				s.handle(pending.PopFront())
			}
			return s.runReady(ctx)
		}
	}
}

// runReady handles requests after the container became ready. The direct
// creation path normally takes over at this point, the loop only sees
// requests that raced with the state change.
func (s *Supervisor) runReady(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.requests:
			s.handle(req)
		}
	}
}

func (s *Supervisor) handle(req createRequest) {
	s.container.logger.Debug(context.Background()).
		Str(log.WorkerNameField, req.name).
		Msg("creating worker on behalf of requester")
	w, err := s.container.spawn(req.spec, req.name)
	req.reply <- createReply{worker: w, err: err}
}

// CreateWorker sends a creation request to the supervisor and blocks until
// the reply carrying the new worker's handle arrives or the timeout elapses.
func (s *Supervisor) CreateWorker(ctx context.Context, spec WorkerSpec, name string, timeout time.Duration) (*Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := createRequest{
		spec: spec,
		name: name,
		// buffered so the supervisor never blocks on a requester that gave up
		reply: make(chan createReply, 1),
	}

	select {
	case <-ctx.Done():
		return nil, cerrors.Errorf("container %s did not accept creation of worker %s within %s: %w", s.container.name, name, timeout, ErrCreationTimeout)
	case s.requests <- req:
	}

	select {
	case <-ctx.Done():
		return nil, cerrors.Errorf("container %s did not create worker %s within %s: %w", s.container.name, name, timeout, ErrCreationTimeout)
	case reply := <-req.reply:
		return reply.worker, reply.err
	}
}
