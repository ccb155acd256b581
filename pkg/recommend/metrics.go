// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mchmarny/crop-advisor/pkg/soil"
)

const unknownSoilLabel = "unknown"

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crop_predictions_total",
			Help: "Total number of successful predictions",
		},
		[]string{"variant", "soil"},
	)

	predictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crop_prediction_errors_total",
			Help: "Total number of failed predictions by error code",
		},
		[]string{"variant", "code"},
	)

	predictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crop_prediction_duration_seconds",
			Help:    "Time spent assembling features and running the model",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"variant"},
	)
)

// soilLabel keeps metric cardinality bounded to the soil table.
func soilLabel(name string) string {
	if _, err := soil.Lookup(name); err != nil {
		return unknownSoilLabel
	}
	return name
}
