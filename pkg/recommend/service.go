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
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
	"github.com/mchmarny/crop-advisor/pkg/model"
	"github.com/mchmarny/crop-advisor/pkg/soil"
)

// RankedMessage accompanies every ranked result.
const RankedMessage = "Análisis predictivo completado exitosamente."

// Variant names used in logs and metrics.
const (
	VariantSingle = "single"
	VariantRanked = "ranked"
)

// Predictor is the inference capability the service needs.
// *model.Adapter satisfies it.
type Predictor interface {
	PredictSingle(v feature.Vector) (string, error)
	PredictRanked(v feature.Vector) ([]model.RankedClass, error)
}

// SingleResult is the single-label response.
type SingleResult struct {
	Crop    string `json:"cultivo_ideal" yaml:"cultivo_ideal"`
	Message string `json:"mensaje" yaml:"mensaje"`
}

// RankedResult is the ranked response. Message is declared first so the
// encoded keys come out sorted.
type RankedResult struct {
	Message string              `json:"mensaje" yaml:"mensaje"`
	Top     []model.RankedClass `json:"top_3_recomendaciones" yaml:"top_3_recomendaciones"`
}

// TableHeader implements serializer.Tabular.
func (r *RankedResult) TableHeader() []string {
	return []string{"cultivo", "viabilidad"}
}

// TableRows implements serializer.Tabular.
func (r *RankedResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Top))
	for _, c := range r.Top {
		rows = append(rows, []string{c.Crop, strconv.FormatFloat(c.Viability, 'f', 2, 64)})
	}
	return rows
}

// Service answers prediction requests against a loaded model.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	predictor Predictor
}

// NewService returns a Service backed by p.
func NewService(p Predictor) (*Service, error) {
	if p == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "predictor is required")
	}
	return &Service{predictor: p}, nil
}

// FeatureVector resolves the soil and assembles the model input.
func FeatureVector(req Request) (feature.Vector, error) {
	p, err := soil.Lookup(req.Soil)
	if err != nil {
		return feature.Vector{}, err
	}
	return feature.Assemble(p, req.Temperature, req.Humidity, req.Rainfall), nil
}

// Recommend returns the single most suitable crop.
func (s *Service) Recommend(ctx context.Context, req Request) (*SingleResult, error) {
	start := time.Now()

	v, err := FeatureVector(req)
	if err != nil {
		return nil, s.fail(ctx, VariantSingle, req, err)
	}

	crop, err := s.predictor.PredictSingle(v)
	if err != nil {
		return nil, s.fail(ctx, VariantSingle, req, err)
	}

	s.observe(ctx, VariantSingle, req, start, "crop", crop)
	return &SingleResult{
		Crop:    crop,
		Message: fmt.Sprintf("Para tierra %s y clima actual, te recomiendo: %s", req.Soil, crop),
	}, nil
}

// RecommendRanked returns up to model.TopN crops by viability, highest first.
func (s *Service) RecommendRanked(ctx context.Context, req Request) (*RankedResult, error) {
	start := time.Now()

	v, err := FeatureVector(req)
	if err != nil {
		return nil, s.fail(ctx, VariantRanked, req, err)
	}

	top, err := s.predictor.PredictRanked(v)
	if err != nil {
		return nil, s.fail(ctx, VariantRanked, req, err)
	}

	s.observe(ctx, VariantRanked, req, start, "top", len(top))
	return &RankedResult{
		Message: RankedMessage,
		Top:     top,
	}, nil
}

func (s *Service) observe(ctx context.Context, variant string, req Request, start time.Time, key string, value any) {
	elapsed := time.Since(start)
	predictionsTotal.WithLabelValues(variant, soilLabel(req.Soil)).Inc()
	predictionDuration.WithLabelValues(variant).Observe(elapsed.Seconds())

	slog.DebugContext(ctx, "prediction completed",
		"variant", variant,
		"soil", req.Soil,
		key, value,
		"duration", elapsed.String(),
	)
}

func (s *Service) fail(ctx context.Context, variant string, req Request, err error) error {
	code := apperrors.CodeOf(err)
	predictionErrors.WithLabelValues(variant, string(code)).Inc()

	slog.DebugContext(ctx, "prediction failed",
		"variant", variant,
		"soil", req.Soil,
		"code", code,
		"error", err,
	)
	return err
}
