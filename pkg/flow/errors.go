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
	"github.com/weftio/weft/pkg/foundation/cerrors"
)

var (
	ErrTimeout              = cerrors.New("timeout")
	ErrCreationTimeout      = cerrors.New("timed out waiting for worker creation")
	ErrDuplicateWorkerName  = cerrors.New("duplicate worker name")
	ErrEndpointNotActive    = cerrors.New("endpoint is not active")
	ErrUnknownEndpointType  = cerrors.New("unknown endpoint type")
	ErrUnsupportedContainer = cerrors.New("unsupported container kind")
	ErrUnsupportedStage     = cerrors.New("unsupported stage kind")
)
