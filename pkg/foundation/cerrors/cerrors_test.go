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

package cerrors_test

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/weftio/weft/pkg/foundation/cerrors"
)

func TestErrorf_Wrapping(t *testing.T) {
	is := is.New(t)
	inner := cerrors.New("inner")
	outer := cerrors.Errorf("outer: %w", inner)

	is.True(cerrors.Is(outer, inner))
	is.Equal(cerrors.Unwrap(outer), inner)
}

func TestGetStackTrace(t *testing.T) {
	is := is.New(t)
	err := cerrors.New("something bad happened")

	frames, ok := cerrors.GetStackTrace(err).([]cerrors.Frame)
	is.True(ok)
	is.True(len(frames) > 0)
	is.True(strings.Contains(frames[0].File, "cerrors_test.go"))
	is.True(frames[0].Line > 0)
}

func TestGetStackTrace_Wrapped(t *testing.T) {
	is := is.New(t)
	err := cerrors.Errorf("layer two: %w", cerrors.New("layer one"))

	frames, ok := cerrors.GetStackTrace(err).([]cerrors.Frame)
	is.True(ok)
	is.Equal(len(frames), 2) // one frame per wrap
}

func TestLogOrReplace(t *testing.T) {
	is := is.New(t)
	oldErr := cerrors.New("old")
	newErr := cerrors.New("new")

	is.Equal(cerrors.LogOrReplace(nil, newErr, func() { t.Fatal("log should not be called") }), newErr)

	var logged bool
	is.Equal(cerrors.LogOrReplace(oldErr, newErr, func() { logged = true }), oldErr)
	is.True(logged)

	is.Equal(cerrors.LogOrReplace(oldErr, nil, func() { t.Fatal("log should not be called") }), oldErr)
}

func TestFatalError(t *testing.T) {
	is := is.New(t)
	cause := cerrors.New("cause")
	fatal := cerrors.NewFatalError(cause)

	is.True(cerrors.IsFatalError(fatal))
	is.True(cerrors.Is(fatal, cause))
	is.Equal(fatal.Error(), cause.Error())

	wrapped := cerrors.Errorf("op failed: %w", fatal)
	is.True(cerrors.IsFatalError(wrapped)) // fatality survives wrapping
	is.True(!cerrors.IsFatalError(cause))
}
