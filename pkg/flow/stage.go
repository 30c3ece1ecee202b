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
	"github.com/weftio/weft/pkg/stream"
)

// Stage is an immutable descriptor of a single processing step in a flow.
// Constructing a stage has no side effects, only activating it spawns a
// worker. The set of stage kinds is sealed, the materializer dispatches on
// the concrete type.
type Stage interface {
	// StageName returns the name used for diagnostics and worker naming.
	StageName() string

	isStage()
}

// TransformStage describes a stage that runs a stream.Behavior on every
// element flowing through it.
type TransformStage struct {
	Name string
	// NewBehavior returns a fresh behavior instance. It is invoked once per
	// activation and never memoized, so two activations of the same
	// descriptor never share behavior state.
	NewBehavior func() stream.Behavior
}

func (s TransformStage) StageName() string { return s.Name }

func (TransformStage) isStage() {}

// MergeStage marks a multi-input join point. It currently has no runtime
// mapping, activating it fails. Kept as a descriptor so flow descriptions
// can already be written against it once a fan-in design lands.
type MergeStage struct {
	Name string
}

func (s MergeStage) StageName() string { return s.Name }

func (MergeStage) isStage() {}
