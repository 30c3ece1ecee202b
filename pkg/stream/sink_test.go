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
)

func TestChannelSinkNode_DrainsElements(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	dst := make(chan any)
	n := &ChannelSinkNode{Name: "sink", C: dst}
	in := make(chan *Message)
	n.Sub(in)

	nodeDone := make(chan struct{})
	go func() {
		defer close(nodeDone)
		err := n.Run(ctx)
		is.NoErr(err)
	}()

	go func() {
		in <- &Message{Ctx: ctx, Element: "a"}
		in <- &Message{Ctx: ctx, Element: "b"}
		close(in)
	}()

	is.Equal(<-dst, "a")
	is.Equal(<-dst, "b")
	waitNode(t, nodeDone)

	select {
	case _, ok := <-dst:
		is.True(ok) // without CloseOnComplete the channel must stay open
	default:
	}
}

func TestChannelSinkNode_CloseOnComplete(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	dst := make(chan any)
	n := &ChannelSinkNode{Name: "sink", C: dst, CloseOnComplete: true}
	in := make(chan *Message)
	n.Sub(in)

	nodeDone := make(chan struct{})
	go func() {
		defer close(nodeDone)
		err := n.Run(ctx)
		is.NoErr(err)
	}()

	go func() {
		in <- &Message{Ctx: ctx, Element: "a"}
		close(in)
	}()

	is.Equal(<-dst, "a")

	_, ok := <-dst
	is.True(!ok) // completion closes the sink channel

	waitNode(t, nodeDone)
}
