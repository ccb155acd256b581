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
	"github.com/mchmarny/crop-advisor/pkg/soil"
)

// Size is the number of features the classifier was trained on.
const Size = 7

// Feature positions. The order is the training-time schema and must not change.
const (
	IdxN = iota
	IdxP
	IdxK
	IdxTemperature
	IdxHumidity
	IdxPH
	IdxRainfall
)

// Names lists the feature names in vector order.
var Names = [Size]string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Vector is the fixed-order model input.
type Vector [Size]float64

// Assemble builds [N, P, K, temperature, humidity, pH, rainfall].
// No bounds checking is applied to any value.
func Assemble(p soil.Profile, temperature, humidity, rainfall float64) Vector {
	return Vector{
		IdxN:           p.N,
		IdxP:           p.P,
		IdxK:           p.K,
		IdxTemperature: temperature,
		IdxHumidity:    humidity,
		IdxPH:          p.PH,
		IdxRainfall:    rainfall,
	}
}

// Slice returns the vector as a new slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Size)
	copy(out, v[:])
	return out
}

// FromSlice converts a slice of exactly Size values into a Vector.
func FromSlice(s []float64) (Vector, bool) {
	var v Vector
	if len(s) != Size {
		return v, false
	}
	copy(v[:], s)
	return v, true
}
