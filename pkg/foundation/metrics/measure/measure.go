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

package measure

import (
	"github.com/weftio/weft/pkg/foundation/metrics"
	"github.com/weftio/weft/pkg/foundation/metrics/prometheus"
)

// Any changes in metrics defined below should also be reflected in the
// metrics documentation.
var (
	FlowsCounter = metrics.NewCounter("weft_flows",
		"Number of materialized flows.")

	WorkersGauge = metrics.NewLabeledGauge("weft_workers",
		"Number of running workers by container.",
		[]string{"container_name"})

	MaterializeDurationTimer = metrics.NewTimer("weft_materialize_duration_seconds",
		"Amount of time spent materializing a flow.",
		prometheus.HistogramOpts{Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}},
	)

	TransformExecutionDurationTimer = metrics.NewLabeledTimer("weft_transform_execution_duration_seconds",
		"Amount of time spent transforming a single element, by stage name.",
		[]string{"stage_name"},
		prometheus.HistogramOpts{Buckets: []float64{.000001, .0000025, .000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01}},
	)
)
