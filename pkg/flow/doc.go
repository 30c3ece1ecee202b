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

// Package flow materializes declarative flow descriptions into running graphs
// of workers. A description consists of a source endpoint, an ordered list of
// transform stages (listed sink-first) and a sink endpoint; materializing it
// activates one worker per stage inside a Container, wires adjacent workers
// with the stream package's backpressured channels and attaches the endpoints
// to the chain's two open ends.
//
// Describing a flow has no side effects. Only Materializer.Materialize spawns
// workers, and the returned MaterializedFlow does not control their lifetime:
// a flow runs until it completes, fails or its container stops.
package flow
