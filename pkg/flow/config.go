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
	"time"

	"github.com/weftio/weft/pkg/foundation/cerrors"
)

// Config holds all configurable values for a Materializer.
type Config struct {
	// NamePrefix is the prefix of generated flow names.
	NamePrefix string
	// CreationTimeout bounds how long a worker creation request may wait for
	// a still-starting container to become ready.
	CreationTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		NamePrefix:      "flow",
		CreationTimeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.NamePrefix == "" {
		return cerrors.New("invalid config: NamePrefix must not be empty")
	}
	if c.CreationTimeout <= 0 {
		return cerrors.New("invalid config: CreationTimeout must be positive")
	}
	return nil
}
