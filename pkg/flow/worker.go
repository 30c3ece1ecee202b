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
	"sync"

	"github.com/weftio/weft/pkg/foundation/cerrors"
	"github.com/weftio/weft/pkg/stream"
)

// WorkerSpec describes how to construct a worker's node. NewNode is invoked
// exactly once, when the worker is spawned in its container.
type WorkerSpec struct {
	NewNode func() stream.Node
}

// Worker is an opaque handle to a spawned stage instance. It exposes the
// node's subscriber and publisher sides for wiring and starts the node on
// its container once every side the node exposes has been wired. A worker is
// never wired into two independent chains, the underlying node panics on a
// second connection attempt.
type Worker struct {
	name      string
	node      stream.Node
	container *Container

	m                  sync.Mutex
	needSub, needPub   bool
	subWired, pubWired bool
	started            bool
}

// Name returns the unique name the worker is registered under in its
// container.
func (w *Worker) Name() string {
	return w.name
}

// Sub wires the worker's incoming side to the given channel. It panics if
// the worker's node has no subscriber side.
func (w *Worker) Sub(in <-chan *stream.Message) {
	sn, ok := w.node.(stream.SubNode)
	if !ok {
		panic(cerrors.Errorf("worker %s has no subscriber side", w.name))
	}
	sn.Sub(in)

	w.m.Lock()
	w.subWired = true
	w.m.Unlock()
	w.maybeStart()
}

// Pub returns the worker's outgoing channel. It panics if the worker's node
// has no publisher side.
func (w *Worker) Pub() <-chan *stream.Message {
	pn, ok := w.node.(stream.PubNode)
	if !ok {
		panic(cerrors.Errorf("worker %s has no publisher side", w.name))
	}
	out := pn.Pub()

	w.m.Lock()
	w.pubWired = true
	w.m.Unlock()
	w.maybeStart()
	return out
}

// maybeStart runs the worker's node once all sides the node exposes are
// wired. Running earlier would make the node fail its wiring checks, running
// later would deadlock the neighbors already sending messages.
func (w *Worker) maybeStart() {
	w.m.Lock()
	defer w.m.Unlock()

	if w.started {
		return
	}
	if w.needSub && !w.subWired {
		return
	}
	if w.needPub && !w.pubWired {
		return
	}

	w.started = true
	w.container.runWorker(w)
}
