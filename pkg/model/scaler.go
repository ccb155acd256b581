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

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

// Scaler kinds.
const (
	KindStandardScaler = "StandardScaler"
	KindMinMaxScaler   = "MinMaxScaler"
)

// ScalerDoc is the serialized form of a fitted scaler.
//
// StandardScaler uses Mean and Scale: (x - mean) / scale. A missing Mean
// means the scaler was fitted without centering.
// MinMaxScaler uses Min and Scale: x*scale + min.
type ScalerDoc struct {
	Kind      string    `json:"kind" yaml:"kind"`
	NFeatures int       `json:"n_features,omitempty" yaml:"n_features,omitempty"`
	Mean      []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale     []float64 `json:"scale" yaml:"scale"`
	Min       []float64 `json:"min,omitempty" yaml:"min,omitempty"`
}

// NewScaler builds a Scaler from its document.
func NewScaler(doc ScalerDoc) (Scaler, error) {
	if doc.NFeatures != 0 && doc.NFeatures != feature.Size {
		return nil, invalidArtifact("scaler", fmt.Sprintf("n_features is %d, want %d", doc.NFeatures, feature.Size))
	}

	scale, err := fixed("scaler", "scale", doc.Scale)
	if err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindStandardScaler:
		var mean feature.Vector
		if doc.Mean != nil {
			if mean, err = fixed("scaler", "mean", doc.Mean); err != nil {
				return nil, err
			}
		}
		for i, s := range scale {
			// zero variance features pass through unscaled
			if s == 0 {
				scale[i] = 1
			}
		}
		return &StandardScaler{mean: mean, scale: scale}, nil
	case KindMinMaxScaler:
		offset, err := fixed("scaler", "min", doc.Min)
		if err != nil {
			return nil, err
		}
		return &MinMaxScaler{min: offset, scale: scale}, nil
	default:
		return nil, invalidArtifact("scaler", fmt.Sprintf("unsupported kind %q", doc.Kind))
	}
}

// StandardScaler centers and scales each feature.
type StandardScaler struct {
	mean  feature.Vector
	scale feature.Vector
}

// Transform returns (v - mean) / scale.
func (s *StandardScaler) Transform(v feature.Vector) (feature.Vector, error) {
	if err := checkNoInf(v); err != nil {
		return v, err
	}
	var out feature.Vector
	for i := range v {
		out[i] = (v[i] - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// MinMaxScaler maps each feature linearly into the fitted range.
type MinMaxScaler struct {
	min   feature.Vector
	scale feature.Vector
}

// Transform returns v*scale + min.
func (s *MinMaxScaler) Transform(v feature.Vector) (feature.Vector, error) {
	if err := checkNoInf(v); err != nil {
		return v, err
	}
	var out feature.Vector
	for i := range v {
		out[i] = v[i]*s.scale[i] + s.min[i]
	}
	return out, nil
}

// checkNoInf rejects infinite inputs; NaN passes through to the classifier.
func checkNoInf(v feature.Vector) error {
	for i, x := range v {
		if math.IsInf(x, 0) {
			return apperrors.NewWithContext(apperrors.ErrCodeInference,
				"Input X contains infinity or a value too large for dtype('float64').",
				map[string]any{"feature": feature.Names[i]})
		}
	}
	return nil
}

func fixed(artifact, field string, vals []float64) (feature.Vector, error) {
	var out feature.Vector
	if len(vals) != feature.Size {
		return out, invalidArtifact(artifact, fmt.Sprintf("%s has %d values, want %d", field, len(vals), feature.Size))
	}
	for i, x := range vals {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return out, invalidArtifact(artifact, fmt.Sprintf("%s[%d] is not finite", field, i))
		}
		out[i] = x
	}
	return out, nil
}

func invalidArtifact(artifact, msg string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeInvalidArtifact,
		fmt.Sprintf("invalid %s artifact: %s", artifact, msg),
		map[string]any{"artifact": artifact})
}
