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
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

// Request field names as sent by clients.
const (
	FieldSoil        = "tierra"
	FieldTemperature = "temp"
	FieldHumidity    = "hum"
	FieldRainfall    = "lluvia"
)

// Request is a parsed prediction request.
type Request struct {
	Soil        string  `json:"tierra" yaml:"tierra"`
	Temperature float64 `json:"temp" yaml:"temp"`
	Humidity    float64 `json:"hum" yaml:"hum"`
	Rainfall    float64 `json:"lluvia" yaml:"lluvia"`
}

// ParseRequest reads a JSON object from r.
//
// The soil is extracted first, then the three numbers are coerced in the
// order temp, hum, lluvia. A soil that is a JSON array or object fails here;
// any other non-string soil is kept as its raw JSON text, which the soil
// table never matches. All errors are ErrCodeValidation.
func ParseRequest(r io.Reader) (Request, error) {
	var req Request

	data, err := io.ReadAll(r)
	if err != nil {
		return req, apperrors.Wrap(apperrors.ErrCodeValidation, "failed to read request body", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return req, apperrors.Wrap(apperrors.ErrCodeValidation, "invalid JSON body", err)
	}
	if fields == nil {
		return req, apperrors.New(apperrors.ErrCodeValidation, "request body must be a JSON object")
	}

	if req.Soil, err = parseSoil(fields); err != nil {
		return req, err
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{FieldTemperature, &req.Temperature},
		{FieldHumidity, &req.Humidity},
		{FieldRainfall, &req.Rainfall},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return req, missingField(f.name)
		}
		if *f.dst, err = feature.CoerceFloat(f.name, raw); err != nil {
			return req, err
		}
	}

	return req, nil
}

func parseSoil(fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields[FieldSoil]
	if !ok {
		return "", missingField(FieldSoil)
	}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return "", missingField(FieldSoil)
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeValidation, "tierra: invalid value", err)
		}
		return s, nil
	case trimmed[0] == '[':
		return "", unhashable("list")
	case trimmed[0] == '{':
		return "", unhashable("dict")
	default:
		return string(trimmed), nil
	}
}

func missingField(name string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeValidation,
		fmt.Sprintf("missing required field: %s", name),
		map[string]any{"field": name})
}

func unhashable(kind string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeValidation,
		fmt.Sprintf("unhashable type: '%s'", kind),
		map[string]any{"field": FieldSoil})
}
