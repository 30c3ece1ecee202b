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
	"testing"

	"github.com/matryer/is"
	"github.com/weftio/weft/pkg/foundation/cerrors"
)

func TestIdentityNode_ForwardsMessages(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	n := &IdentityNode{Name: "identity"}
	in := make(chan *Message)
	n.Sub(in)
	out := n.Pub()

	nodeDone := make(chan struct{})
	go func() {
		defer close(nodeDone)
		err := n.Run(ctx)
		is.NoErr(err)
	}()

	want := &Message{Ctx: ctx, Element: "a"}
	go func() {
		in <- want
		close(in)
	}()

	is.Equal(<-out, want) // same message pointer comes out

	_, ok := <-out
	is.True(!ok)

	waitNode(t, nodeDone)
}

func TestIdentityNode_StopsOnContextCancel(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())

	n := &IdentityNode{Name: "identity"}
	in := make(chan *Message)
	n.Sub(in)
	out := n.Pub()

	nodeDone := make(chan struct{})
	go func() {
		defer close(nodeDone)
		err := n.Run(ctx)
		is.True(cerrors.Is(err, context.Canceled))
	}()

	cancel()
	_, ok := <-out
	is.True(!ok)

	waitNode(t, nodeDone)
}
