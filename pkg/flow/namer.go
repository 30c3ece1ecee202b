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
	"strconv"
	"sync/atomic"
)

// namer issues unique flow names of the form "<prefix>-<counter>". The
// counter is shared by reference between namers derived with WithPrefix, so
// names stay unique across all materializer copies of the same family.
type namer struct {
	prefix  string
	counter *atomic.Int64
}

func newNamer(prefix string) *namer {
	return &namer{
		prefix:  prefix,
		counter: &atomic.Int64{},
	}
}

// Next returns the next flow name. It is safe for concurrent use, no two
// calls ever observe the same counter value.
func (n *namer) Next() string {
	return n.prefix + "-" + strconv.FormatInt(n.counter.Add(1), 10)
}

// WithPrefix returns a namer with a different prefix sharing the same
// counter.
func (n *namer) WithPrefix(prefix string) *namer {
	return &namer{
		prefix:  prefix,
		counter: n.counter,
	}
}
