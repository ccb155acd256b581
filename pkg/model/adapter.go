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
	"fmt"
	"math"
	"sort"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

// TopN is the length of a ranked prediction.
const TopN = 3

// Scaler normalizes a feature vector the way the classifier was trained.
type Scaler interface {
	Transform(v feature.Vector) (feature.Vector, error)
}

// Classifier maps a scaled vector to a class index or class probabilities.
type Classifier interface {
	Predict(v feature.Vector) (int, error)
	PredictProba(v feature.Vector) ([]float64, error)
}

// LabelEncoder maps class indices to crop names.
type LabelEncoder interface {
	Decode(idx int) (string, error)
	ClassNames() []string
}

// ClassCounter is implemented by classifiers that know their class count.
type ClassCounter interface {
	NumClasses() int
}

// RankedClass is one entry of a ranked prediction. Viability is a
// percentage rounded to two decimals.
type RankedClass struct {
	Crop      string  `json:"cultivo" yaml:"cultivo"`
	Viability float64 `json:"viabilidad" yaml:"viabilidad"`
}

// Adapter is the loaded inference pipeline. It is immutable after
// construction.
type Adapter struct {
	scaler     Scaler
	classifier Classifier
	encoder    LabelEncoder
	classes    []string
}

// NewAdapter composes the three stages. When the classifier reports its class
// count it must match the encoder.
func NewAdapter(s Scaler, c Classifier, e LabelEncoder) (*Adapter, error) {
	if s == nil || c == nil || e == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidArtifact, "scaler, classifier and label encoder are all required")
	}

	classes := e.ClassNames()
	if len(classes) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidArtifact, "label encoder has no classes")
	}
	if cc, ok := c.(ClassCounter); ok && cc.NumClasses() != len(classes) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidArtifact,
			fmt.Sprintf("classifier has %d classes, label encoder has %d", cc.NumClasses(), len(classes)),
			map[string]any{"classifier": cc.NumClasses(), "encoder": len(classes)})
	}

	return &Adapter{
		scaler:     s,
		classifier: c,
		encoder:    e,
		classes:    append([]string(nil), classes...),
	}, nil
}

// Classes returns the crop names in class-index order.
func (a *Adapter) Classes() []string {
	return append([]string(nil), a.classes...)
}

// PredictSingle scales v, predicts a class and decodes it.
func (a *Adapter) PredictSingle(v feature.Vector) (string, error) {
	scaled, err := a.scaler.Transform(v)
	if err != nil {
		return "", err
	}
	idx, err := a.classifier.Predict(scaled)
	if err != nil {
		return "", err
	}
	return a.encoder.Decode(idx)
}

// PredictRanked scales v and returns the TopN most probable crops, highest
// first. Equal probabilities keep class-index order. Fewer than TopN entries
// are returned when fewer classes exist.
func (a *Adapter) PredictRanked(v feature.Vector) ([]RankedClass, error) {
	scaled, err := a.scaler.Transform(v)
	if err != nil {
		return nil, err
	}
	proba, err := a.classifier.PredictProba(scaled)
	if err != nil {
		return nil, err
	}
	if len(proba) != len(a.classes) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInference,
			fmt.Sprintf("classifier returned %d probabilities for %d classes", len(proba), len(a.classes)),
			map[string]any{"probabilities": len(proba), "classes": len(a.classes)})
	}

	order := make([]int, len(proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return proba[order[i]] > proba[order[j]]
	})

	n := min(TopN, len(order))
	out := make([]RankedClass, 0, n)
	for _, idx := range order[:n] {
		out = append(out, RankedClass{
			Crop:      a.classes[idx],
			Viability: Percent(proba[idx]),
		})
	}
	return out, nil
}

// Percent converts a probability to a percentage rounded to two decimals.
func Percent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
