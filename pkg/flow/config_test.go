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
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(c Config) Config
		wantErr bool
	}{{
		name:    "default is valid",
		setup:   func(c Config) Config { return c },
		wantErr: false,
	}, {
		name: "empty name prefix",
		setup: func(c Config) Config {
			c.NamePrefix = ""
			return c
		},
		wantErr: true,
	}, {
		name: "zero creation timeout",
		setup: func(c Config) Config {
			c.CreationTimeout = 0
			return c
		},
		wantErr: true,
	}, {
		name: "negative creation timeout",
		setup: func(c Config) Config {
			c.CreationTimeout = -time.Second
			return c
		},
		wantErr: true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			err := tc.setup(DefaultConfig()).Validate()
			if tc.wantErr {
				is.True(err != nil)
			} else {
				is.NoErr(err)
			}
		})
	}
}
