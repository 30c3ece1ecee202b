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

// Package stream defines the worker runtime of a flow. A worker is a Node
// processing messages that flow through a chain of nodes, connected with
// unbuffered channels. The channel handoff doubles as the demand signal: a
// node only produces the next message once its downstream neighbor received
// the previous one. Completion is propagated by closing the outgoing channel,
// errors abort the node's Run and are surfaced to whoever runs the node.
package stream
