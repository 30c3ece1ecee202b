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
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/foundation/log"
	"github.com/weftio/weft/pkg/stream"
)

func identitySpec(name string) WorkerSpec {
	return WorkerSpec{NewNode: func() stream.Node {
		return &stream.IdentityNode{Name: name}
	}}
}

func TestContainer_StateTransitions(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := newTestContainer(ctx, t, false)

	is.Equal(c.State(), ContainerStateStarting)
	c.Start()
	is.Equal(c.State(), ContainerStateReady)
}

func TestContainer_DuplicateWorkerName(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := newTestContainer(ctx, t, true)

	_, err := c.spawn(identitySpec("w"), "w")
	is.NoErr(err)

	_, err = c.spawn(identitySpec("w"), "w")
	is.True(cerrors.IsFatalError(err))
	is.True(cerrors.Is(err, ErrDuplicateWorkerName))
}

func TestContainer_StopWait(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := NewContainer(ctx, "test-container", log.Test(t))
	c.Start()

	// a worker that only stops when its context is canceled
	w, err := c.spawn(identitySpec("w"), "w")
	is.NoErr(err)
	in := make(chan *stream.Message)
	w.Sub(in)
	_ = w.Pub()

	reason := cerrors.New("shutting down")
	c.Stop(reason)
	is.Equal(c.Wait(time.Second), reason)
}

func TestContainer_WaitTimeout(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := newTestContainer(ctx, t, true)

	// the container was not stopped, Wait must give up
	is.Equal(c.Wait(time.Millisecond), ErrTimeout)
}
