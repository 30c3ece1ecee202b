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

package stream

import (
	"context"
)

// Message represents a single element flowing through a chain of nodes. Only
// a single node is allowed to hold a message and access its fields at a
// specific point in time, otherwise we could introduce race conditions.
type Message struct {
	// Ctx is the context in which the element was produced. It should be used
	// for any function calls when processing the message. If the context is
	// done the message should not be processed further.
	Ctx context.Context
	// Element is the payload carried by the message. Its concrete type is an
	// agreement between the flow's endpoints and transform behaviors, the
	// stream layer treats it as opaque.
	Element any
}
