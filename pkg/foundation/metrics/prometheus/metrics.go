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

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/weftio/weft/pkg/foundation/metrics"
)

type counter struct {
	pc prometheus.Counter
}

func (c *counter) Inc(vs ...float64) {
	if len(vs) == 0 {
		c.pc.Inc()
		return
	}
	c.pc.Add(sum(vs))
}

type labeledCounter struct {
	pc *prometheus.CounterVec
}

func (c *labeledCounter) WithValues(vs ...string) metrics.Counter {
	return &counter{pc: c.pc.WithLabelValues(vs...)}
}

type gauge struct {
	pg prometheus.Gauge
}

func (g *gauge) Inc(vs ...float64) {
	if len(vs) == 0 {
		g.pg.Inc()
		return
	}
	g.pg.Add(sum(vs))
}

func (g *gauge) Dec(vs ...float64) {
	if len(vs) == 0 {
		g.pg.Dec()
		return
	}
	g.pg.Sub(sum(vs))
}

func (g *gauge) Set(v float64) {
	g.pg.Set(v)
}

type labeledGauge struct {
	pg *prometheus.GaugeVec
}

func (g *labeledGauge) WithValues(vs ...string) metrics.Gauge {
	return &gauge{pg: g.pg.WithLabelValues(vs...)}
}

type timer struct {
	ph prometheus.Histogram
}

func (t *timer) Update(d time.Duration) {
	t.ph.Observe(d.Seconds())
}

func (t *timer) UpdateSince(since time.Time) {
	t.ph.Observe(time.Since(since).Seconds())
}

type labeledTimer struct {
	ph *prometheus.HistogramVec
}

func (t *labeledTimer) WithValues(vs ...string) metrics.Timer {
	return &timer{ph: t.ph.WithLabelValues(vs...).(prometheus.Histogram)}
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}
