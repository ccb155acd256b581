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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

func TestStandardScaler(t *testing.T) {
	s, err := NewScaler(testScalerDoc())
	require.NoError(t, err)

	got, err := s.Transform(feature.Vector{100, 60, 50, 25, 60, 6.5, 100})
	require.NoError(t, err)
	want := feature.Vector{2, 1, 1, 0, -10.0 / 15, 0, 0}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "feature %s", feature.Names[i])
	}
}

func TestStandardScaler_ZeroScaleAndNoMean(t *testing.T) {
	s, err := NewScaler(ScalerDoc{
		Kind:  KindStandardScaler,
		Scale: []float64{0, 2, 2, 2, 2, 2, 2},
	})
	require.NoError(t, err)

	got, err := s.Transform(feature.Vector{5, 4, 4, 4, 4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, feature.Vector{5, 2, 2, 2, 2, 2, 2}, got)
}

func TestMinMaxScaler(t *testing.T) {
	s, err := NewScaler(ScalerDoc{
		Kind:  KindMinMaxScaler,
		Min:   []float64{-1, 0, 0, 0, 0, 0, 0},
		Scale: []float64{0.01, 1, 1, 1, 1, 1, 0.5},
	})
	require.NoError(t, err)

	got, err := s.Transform(feature.Vector{100, 1, 2, 3, 4, 5, 10})
	require.NoError(t, err)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.Equal(t, 5.0, got[6])
}

func TestScaler_RejectsInfinity(t *testing.T) {
	s, err := NewScaler(testScalerDoc())
	require.NoError(t, err)

	_, err = s.Transform(feature.Vector{0, 0, 0, math.Inf(1), 0, 0, 0})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInference))
}

func TestNewScaler_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  ScalerDoc
	}{
		{"unknown kind", ScalerDoc{Kind: "RobustScaler", Scale: make([]float64, 7)}},
		{"short scale", ScalerDoc{Kind: KindStandardScaler, Scale: []float64{1, 1}}},
		{"short mean", ScalerDoc{Kind: KindStandardScaler, Mean: []float64{1}, Scale: make([]float64, 7)}},
		{"minmax without min", ScalerDoc{Kind: KindMinMaxScaler, Scale: make([]float64, 7)}},
		{"wrong n_features", ScalerDoc{Kind: KindStandardScaler, NFeatures: 4, Scale: make([]float64, 7)}},
		{"nan scale", ScalerDoc{Kind: KindStandardScaler, Scale: []float64{math.NaN(), 1, 1, 1, 1, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScaler(tt.doc)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact), "got %v", err)
		})
	}
}

func TestForest_PredictProba(t *testing.T) {
	f, err := NewForest(testForestDoc())
	require.NoError(t, err)
	assert.Equal(t, 4, f.NumClasses())

	proba, err := f.PredictProba(feature.Vector{2, 1, 1, 0, -0.7, 0, 0})
	require.NoError(t, err)
	want := []float64{0, 0.55, 0.4, 0.05}
	for i := range want {
		assert.InDelta(t, want[i], proba[i], 1e-12)
	}

	var sum float64
	for _, p := range proba {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	idx, err := f.Predict(feature.Vector{2, 1, 1, 0, -0.7, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestForest_ThresholdIsInclusive(t *testing.T) {
	f, err := NewForest(testForestDoc())
	require.NoError(t, err)

	// N exactly at 0.5 goes left to the pure arroz leaf.
	proba, err := f.PredictProba(feature.Vector{0.5, 0, 0, 0, 1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, proba[0], 1e-12)
}

func TestForest_PredictFirstMaxWins(t *testing.T) {
	f, err := NewForest(ForestDoc{
		Kind:      KindDecisionTree,
		NFeatures: 7,
		NClasses:  3,
		Trees: []TreeDoc{{
			ChildrenLeft:  []int{-1},
			ChildrenRight: []int{-1},
			Feature:       []int{-2},
			Threshold:     []float64{-2},
			Value:         [][]float64{{1, 3, 3}},
		}},
	})
	require.NoError(t, err)

	idx, err := f.Predict(feature.Vector{})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestForest_RejectsNaN(t *testing.T) {
	f, err := NewForest(testForestDoc())
	require.NoError(t, err)

	_, err = f.Predict(feature.Vector{math.NaN()})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInference))
}

func TestNewForest_Invalid(t *testing.T) {
	mutate := func(fn func(*ForestDoc)) ForestDoc {
		d := testForestDoc()
		fn(&d)
		return d
	}

	tests := []struct {
		name string
		doc  ForestDoc
	}{
		{"unknown kind", mutate(func(d *ForestDoc) { d.Kind = "SVC" })},
		{"wrong n_features", mutate(func(d *ForestDoc) { d.NFeatures = 8 })},
		{"no classes", mutate(func(d *ForestDoc) { d.NClasses = 0 })},
		{"no trees", mutate(func(d *ForestDoc) { d.Trees = nil })},
		{"decision tree with two trees", mutate(func(d *ForestDoc) { d.Kind = KindDecisionTree })},
		{"ragged arrays", mutate(func(d *ForestDoc) { d.Trees[0].Feature = d.Trees[0].Feature[:2] })},
		{"child points back", mutate(func(d *ForestDoc) { d.Trees[0].ChildrenLeft[2] = 1 })},
		{"child out of range", mutate(func(d *ForestDoc) { d.Trees[0].ChildrenRight[0] = 9 })},
		{"half leaf", mutate(func(d *ForestDoc) { d.Trees[1].ChildrenRight[1] = 2 })},
		{"feature out of range", mutate(func(d *ForestDoc) { d.Trees[0].Feature[0] = 7 })},
		{"leaf class count", mutate(func(d *ForestDoc) { d.Trees[0].Value[1] = []float64{1, 0} })},
		{"negative weight", mutate(func(d *ForestDoc) { d.Trees[0].Value[1] = []float64{-1, 0, 0, 0} })},
		{"nan threshold", mutate(func(d *ForestDoc) { d.Trees[0].Threshold[0] = math.NaN() })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewForest(tt.doc)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact), "got %v", err)
		})
	}
}

func TestLabels(t *testing.T) {
	l, err := NewLabels(EncoderDoc{Classes: testClasses})
	require.NoError(t, err)

	name, err := l.Decode(2)
	require.NoError(t, err)
	assert.Equal(t, "maíz", name)

	_, err = l.Decode(4)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInference))
	_, err = l.Decode(-1)
	assert.Error(t, err)

	names := l.ClassNames()
	names[0] = "x"
	assert.Equal(t, "arroz", l.ClassNames()[0])

	for _, bad := range [][]string{nil, {"a", "a"}, {"a", ""}} {
		_, err := NewLabels(EncoderDoc{Classes: bad})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact), "classes %v", bad)
	}
}
