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

package metrics

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

// recordingRegistry counts metric creations so tests can observe the global
// fan-out.
type recordingRegistry struct {
	created []string
}

func (r *recordingRegistry) NewCounter(name, _ string, _ ...Option) Counter {
	r.created = append(r.created, name)
	return &recordingCounter{}
}

func (r *recordingRegistry) NewGauge(name, _ string, _ ...Option) Gauge {
	r.created = append(r.created, name)
	return &recordingGauge{}
}

func (r *recordingRegistry) NewTimer(name, _ string, _ ...Option) Timer {
	r.created = append(r.created, name)
	return &recordingTimer{}
}

func (r *recordingRegistry) NewLabeledCounter(name, _ string, _ []string, _ ...Option) LabeledCounter {
	r.created = append(r.created, name)
	return &recordingLabeledCounter{}
}

func (r *recordingRegistry) NewLabeledGauge(name, _ string, _ []string, _ ...Option) LabeledGauge {
	r.created = append(r.created, name)
	return &recordingLabeledGauge{}
}

func (r *recordingRegistry) NewLabeledTimer(name, _ string, _ []string, _ ...Option) LabeledTimer {
	r.created = append(r.created, name)
	return &recordingLabeledTimer{}
}

type recordingCounter struct{ count float64 }

func (c *recordingCounter) Inc(vs ...float64) {
	if len(vs) == 0 {
		c.count++
		return
	}
	for _, v := range vs {
		c.count += v
	}
}

type recordingGauge struct{ value float64 }

func (g *recordingGauge) Inc(...float64) { g.value++ }
func (g *recordingGauge) Dec(...float64) { g.value-- }
func (g *recordingGauge) Set(v float64)  { g.value = v }

type recordingTimer struct{ total time.Duration }

func (t *recordingTimer) Update(d time.Duration)  { t.total += d }
func (t *recordingTimer) UpdateSince(s time.Time) { t.total += time.Since(s) }

type recordingLabeledCounter struct{ c recordingCounter }

func (lc *recordingLabeledCounter) WithValues(...string) Counter { return &lc.c }

type recordingLabeledGauge struct{ g recordingGauge }

func (lg *recordingLabeledGauge) WithValues(...string) Gauge { return &lg.g }

type recordingLabeledTimer struct{ t recordingTimer }

func (lt *recordingLabeledTimer) WithValues(...string) Timer { return &lt.t }

func TestRegister_CreatesExistingMetrics(t *testing.T) {
	is := is.New(t)

	NewCounter("metrics_test_existing", "")
	r := &recordingRegistry{}
	Register(r)

	is.True(contains(r.created, "metrics_test_existing"))
}

func TestNewCounter_FansOutToRegistries(t *testing.T) {
	is := is.New(t)

	r := &recordingRegistry{}
	Register(r)

	c := NewCounter("metrics_test_fanout", "")
	is.True(contains(r.created, "metrics_test_fanout"))

	c.Inc()
	c.Inc(2)
	// find the counter created in our registry and check the count arrived
	mt := c.(*counter)
	for _, m := range mt.metrics {
		if rc, ok := m.(*recordingCounter); ok {
			is.Equal(rc.count, float64(3))
		}
	}
}

func TestNewLabeledTimer_CompositeWithValues(t *testing.T) {
	is := is.New(t)

	r := &recordingRegistry{}
	Register(r)

	lt := NewLabeledTimer("metrics_test_labeled_timer", "", []string{"label"})
	lt.WithValues("v").Update(time.Second)
	lt.WithValues("v").UpdateSince(time.Now())

	mt := lt.(*labeledTimer)
	for _, m := range mt.metrics {
		if rlt, ok := m.(*recordingLabeledTimer); ok {
			is.True(rlt.t.total >= time.Second)
		}
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
