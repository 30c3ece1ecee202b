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

// Package prometheus contains a metrics.Registry implementation backed by the
// prometheus client. The registry implements prometheus.Collector and can be
// registered in a prometheus registerer to expose weft metrics.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/weftio/weft/pkg/foundation/metrics"
)

// NewRegistry returns a registry that is responsible for managing a
// collection of metrics. Labels allows constant labels to be added to all
// metrics created in this registry, although this parameter should be used
// responsibly.
func NewRegistry(labels map[string]string) *Registry {
	return &Registry{
		labels: labels,
	}
}

// Registry describes a set of metrics. It implements metrics.Registry as well
// as prometheus.Collector and can thus be used as an adapter to collect weft
// metrics and deliver them to the prometheus client.
type Registry struct {
	labels  map[string]string
	mu      sync.Mutex
	metrics []prometheus.Collector
}

var (
	_ metrics.Registry     = (*Registry)(nil)
	_ prometheus.Collector = (*Registry)(nil)
)

func (r *Registry) NewCounter(name, help string, _ ...metrics.Option) metrics.Counter {
	c := &counter{pc: prometheus.NewCounter(prometheus.CounterOpts{
		Name:        name,
		Help:        help,
		ConstLabels: r.labels,
	})}
	r.add(c.pc)
	return c
}

func (r *Registry) NewLabeledCounter(name, help string, labels []string, _ ...metrics.Option) metrics.LabeledCounter {
	c := &labeledCounter{pc: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        name,
		Help:        help,
		ConstLabels: r.labels,
	}, labels)}
	r.add(c.pc)
	return c
}

func (r *Registry) NewGauge(name, help string, _ ...metrics.Option) metrics.Gauge {
	g := &gauge{pg: prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        name,
		Help:        help,
		ConstLabels: r.labels,
	})}
	r.add(g.pg)
	return g
}

func (r *Registry) NewLabeledGauge(name, help string, labels []string, _ ...metrics.Option) metrics.LabeledGauge {
	g := &labeledGauge{pg: prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        name,
		Help:        help,
		ConstLabels: r.labels,
	}, labels)}
	r.add(g.pg)
	return g
}

func (r *Registry) NewTimer(name, help string, opts ...metrics.Option) metrics.Timer {
	t := &timer{ph: prometheus.NewHistogram(r.newHistogramOpts(name, help, opts))}
	r.add(t.ph)
	return t
}

func (r *Registry) NewLabeledTimer(name, help string, labels []string, opts ...metrics.Option) metrics.LabeledTimer {
	t := &labeledTimer{ph: prometheus.NewHistogramVec(r.newHistogramOpts(name, help, opts), labels)}
	r.add(t.ph)
	return t
}

func (r *Registry) newHistogramOpts(name, help string, opts []metrics.Option) prometheus.HistogramOpts {
	promOpts := prometheus.HistogramOpts{
		Name:        name,
		Help:        help,
		ConstLabels: r.labels,
	}
	for _, mopt := range opts {
		opt, ok := mopt.(HistogramOpts)
		if !ok {
			// skip non-prometheus options
			continue
		}
		promOpts = opt.apply(promOpts)
	}
	return promOpts
}

func (r *Registry) add(c prometheus.Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, c)
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.metrics {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.metrics {
		m.Collect(ch)
	}
}

// HistogramOpts is a metrics.Option that customizes the histogram backing a
// timer created in this registry.
type HistogramOpts struct {
	Buckets []float64
}

func (o HistogramOpts) apply(opts prometheus.HistogramOpts) prometheus.HistogramOpts {
	if len(o.Buckets) > 0 {
		opts.Buckets = o.Buckets
	}
	return opts
}
