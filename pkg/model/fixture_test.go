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

package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var testClasses = []string{"arroz", "café", "maíz", "naranja"}

func testForestDoc() ForestDoc {
	return ForestDoc{
		Kind:      KindRandomForest,
		NFeatures: 7,
		NClasses:  4,
		Trees: []TreeDoc{
			{
				ChildrenLeft:  []int{1, -1, 3, -1, -1},
				ChildrenRight: []int{2, -1, 4, -1, -1},
				Feature:       []int{0, -2, 6, -2, -2},
				Threshold:     []float64{0.5, -2, 0, -2, -2},
				Value:         [][]float64{{10, 6, 5, 9}, {10, 0, 0, 0}, {0, 6, 5, 9}, {0, 6, 3, 1}, {0, 0, 2, 8}},
			},
			{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{4, -2, -2},
				Threshold:     []float64{-0.5, -2, -2},
				Value:         [][]float64{{4, 7, 7, 2}, {0, 5, 5, 0}, {4, 2, 2, 2}},
			},
		},
	}
}

func testScalerDoc() ScalerDoc {
	return ScalerDoc{
		Kind:      KindStandardScaler,
		NFeatures: 7,
		Mean:      []float64{50, 45, 40, 25, 70, 6.5, 100},
		Scale:     []float64{25, 15, 10, 5, 15, 0.7, 50},
	}
}

func loadFixture(t *testing.T) *Adapter {
	t.Helper()
	a, err := Load(context.Background(), "testdata/json")
	require.NoError(t, err)
	return a
}
