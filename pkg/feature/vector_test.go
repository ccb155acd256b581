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

package feature

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/soil"
)

func TestAssemble_Order(t *testing.T) {
	p, err := soil.Lookup("Negra")
	require.NoError(t, err)

	got := Assemble(p, 25, 60, 100)
	assert.Equal(t, Vector{100.0, 60.0, 50.0, 25.0, 60.0, 6.5, 100.0}, got)
}

func TestAssemble_NoBoundsChecking(t *testing.T) {
	p, err := soil.Lookup("Roja")
	require.NoError(t, err)

	got := Assemble(p, -40, 150, -1)
	assert.Equal(t, -40.0, got[IdxTemperature])
	assert.Equal(t, 150.0, got[IdxHumidity])
	assert.Equal(t, -1.0, got[IdxRainfall])
	assert.Equal(t, 5.5, got[IdxPH])
}

func TestNamesMatchIndexes(t *testing.T) {
	assert.Equal(t, "N", Names[IdxN])
	assert.Equal(t, "P", Names[IdxP])
	assert.Equal(t, "K", Names[IdxK])
	assert.Equal(t, "temperature", Names[IdxTemperature])
	assert.Equal(t, "humidity", Names[IdxHumidity])
	assert.Equal(t, "ph", Names[IdxPH])
	assert.Equal(t, "rainfall", Names[IdxRainfall])
}

func TestSliceRoundTrip(t *testing.T) {
	v := Vector{1, 2, 3, 4, 5, 6, 7}
	s := v.Slice()
	s[0] = 99
	assert.Equal(t, 1.0, v[0], "Slice must copy")

	back, ok := FromSlice([]float64{1, 2, 3, 4, 5, 6, 7})
	require.True(t, ok)
	assert.Equal(t, v, back)

	_, ok = FromSlice([]float64{1, 2, 3})
	assert.False(t, ok)
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"integer", `25`, 25, false},
		{"decimal", `60.5`, 60.5, false},
		{"negative", `-3.25`, -3.25, false},
		{"exponent", `1e2`, 100, false},
		{"numeric string", `"25"`, 25, false},
		{"padded string", `"  12.5 "`, 12.5, false},
		{"true", `true`, 1, false},
		{"false", `false`, 0, false},
		{"word", `"caliente"`, 0, true},
		{"empty string", `""`, 0, true},
		{"hex string", `"0x10"`, 0, true},
		{"digit separators", `"1_000.2_5"`, 1000.25, false},
		{"leading underscore", `"_10"`, 0, true},
		{"trailing underscore", `"10_"`, 0, true},
		{"double underscore", `"1__0"`, 0, true},
		{"underscore before point", `"1_.5"`, 0, true},
		{"null", `null`, 0, true},
		{"object", `{"v": 1}`, 0, true},
		{"array", `[1]`, 0, true},
		{"missing", ``, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceFloat("temp", json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation), "expected validation code, got %v", err)
				assert.Contains(t, err.Error(), "temp")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceFloat_SpecialStrings(t *testing.T) {
	got, err := CoerceFloat("hum", json.RawMessage(`"inf"`))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = CoerceFloat("hum", json.RawMessage(`"-Infinity"`))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, err = CoerceFloat("hum", json.RawMessage(`"nan"`))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	got, err = CoerceFloat("hum", json.RawMessage(`"1e999"`))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = CoerceFloat("temp", json.RawMessage(`"1_0"`))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}
