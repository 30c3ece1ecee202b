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
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/weftio/weft/pkg/foundation/cerrors"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.ErrorStackMarshaler = cerrors.GetStackTrace
}

// CtxLogger is a wrapper around a zerolog.Logger which adds support for adding
// context hooks to it. All methods that return *zerolog.Event are switched for
// versions that take a context and trigger context hooks before returning the
// entry.
type CtxLogger struct {
	zerolog.Logger
	// component is attached to all messages and can be replaced
	component string
}

// New creates a new CtxLogger with the supplied zerolog.Logger.
func New(logger zerolog.Logger) CtxLogger {
	return CtxLogger{Logger: logger}
}

// Nop returns a disabled logger for which all operation are no-op.
func Nop() CtxLogger {
	return CtxLogger{Logger: zerolog.Nop()}
}

// Test returns a test logger that writes to the supplied testing.TB.
func Test(t testing.TB) CtxLogger {
	return CtxLogger{Logger: zerolog.New(zerolog.NewTestWriter(t))}
}

// WithComponent adds the component to the output. This function can be called
// multiple times with the same value and it will produce the same result. If
// component is an empty string then nothing will be added to the output.
func (l CtxLogger) WithComponent(component string) CtxLogger {
	l.component = component
	return l
}

// WithComponentFromType derives the component name from the type of c.
func (l CtxLogger) WithComponentFromType(c any) CtxLogger {
	cType := reflect.TypeOf(c)
	for cType.Kind() == reflect.Ptr || cType.Kind() == reflect.Interface {
		cType = cType.Elem()
	}

	pkgPath := cType.PkgPath()
	pkgPath = strings.TrimPrefix(pkgPath, "github.com/weftio/weft/pkg/")
	pkgPath = strings.ReplaceAll(pkgPath, "/", ".")
	typeName := cType.Name()
	l.component = pkgPath + "." + typeName
	return l
}

func (l CtxLogger) Component() string {
	return l.component
}

// Trace starts a new message with trace level and context ctx.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Trace(ctx context.Context) *zerolog.Event {
	return l.attachComponent(l.Logger.Trace().Ctx(ctx))
}

// Debug starts a new message with debug level and context ctx.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Debug(ctx context.Context) *zerolog.Event {
	return l.attachComponent(l.Logger.Debug().Ctx(ctx))
}

// Info starts a new message with info level and context ctx.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Info(ctx context.Context) *zerolog.Event {
	return l.attachComponent(l.Logger.Info().Ctx(ctx))
}

// Warn starts a new message with warn level and context ctx.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Warn(ctx context.Context) *zerolog.Event {
	return l.attachComponent(l.Logger.Warn().Ctx(ctx))
}

// Error starts a new message with error level and context ctx.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Error(ctx context.Context) *zerolog.Event {
	return l.attachComponent(l.Logger.Error().Ctx(ctx))
}

// Err starts a new message with context ctx and error level with err as a
// field if not nil or with info level if err is nil.
//
// You must call Msg on the returned event in order to send the event.
func (l CtxLogger) Err(ctx context.Context, err error) *zerolog.Event {
	return l.attachComponent(l.Logger.Err(err).Ctx(ctx))
}

func (l CtxLogger) attachComponent(e *zerolog.Event) *zerolog.Event {
	if l.component != "" {
		e.Str(ComponentField, l.component)
	}
	return e
}
