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

package csync

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestValueWatcher_GetEmpty(t *testing.T) {
	is := is.New(t)
	var h ValueWatcher[int]
	is.Equal(h.Get(), 0)
}

func TestValueWatcher_SetGet(t *testing.T) {
	is := is.New(t)
	var h ValueWatcher[int]
	h.Set(42)
	is.Equal(h.Get(), 42)
}

func TestValueWatcher_WatchCurrentValue(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	var h ValueWatcher[string]
	h.Set("ready")

	// the current value already matches, Watch must not block
	got, err := h.Watch(ctx, WatchValues("ready"))
	is.NoErr(err)
	is.Equal(got, "ready")
}

func TestValueWatcher_WatchFutureValue(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	var h ValueWatcher[string]
	h.Set("starting")

	done := make(chan struct{})
	go func() {
		defer close(done)
		got, err := h.Watch(ctx, WatchValues("ready"))
		is.NoErr(err)
		is.Equal(got, "ready")
	}()

	h.Set("ready")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not observe the new value")
	}
}

func TestValueWatcher_WatchContextCancel(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	var h ValueWatcher[string]

	done := make(chan error, 1)
	go func() {
		_, err := h.Watch(ctx, WatchValues("never"))
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		is.Equal(err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not return after context cancel")
	}
}

func TestWatchValues_Empty(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil) // watching no values would block forever
	}()
	WatchValues[string]()
}

func TestWatchValues_Multiple(t *testing.T) {
	is := is.New(t)
	f := WatchValues(1, 2, 3)
	is.True(f(2))
	is.True(!f(4))
}
