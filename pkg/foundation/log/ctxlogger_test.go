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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/weftio/weft/pkg/foundation/cerrors"
)

func TestCtxLogger_WithComponent(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := New(zerolog.New(&buf)).WithComponent("flow.Materializer")

	logger.Info(context.Background()).Msg("hello")

	is.True(strings.Contains(buf.String(), `"component":"flow.Materializer"`))
}

func TestCtxLogger_WithoutComponent(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := New(zerolog.New(&buf))

	logger.Info(context.Background()).Msg("hello")

	is.True(!strings.Contains(buf.String(), "component"))
}

type testComponent struct{}

func TestCtxLogger_WithComponentFromType(t *testing.T) {
	is := is.New(t)
	logger := Nop().WithComponentFromType(&testComponent{})

	is.Equal(logger.Component(), "foundation.log.testComponent")
}

func TestCtxLogger_ErrLevel(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := New(zerolog.New(&buf))

	logger.Err(context.Background(), nil).Msg("all good")
	is.True(strings.Contains(buf.String(), `"level":"info"`))

	buf.Reset()
	logger.Err(context.Background(), cerrors.New("boom")).Msg("failed")
	is.True(strings.Contains(buf.String(), `"level":"error"`))
}
