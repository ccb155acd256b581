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

// Package soil holds the static knowledge base that translates the soil type a
// grower sees into the nutrient and pH values the model was trained on.
package soil

import (
	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// UnrecognizedMessage is the client-facing text for an unknown soil type.
const UnrecognizedMessage = "Tipo de tierra no reconocido"

// Known soil type names.
const (
	Arcillosa = "Arcillosa"
	Arenosa   = "Arenosa"
	Limosa    = "Limosa"
	Negra     = "Negra"
	Roja      = "Roja"
)

// Profile is the nutrient composition associated with a soil type.
type Profile struct {
	Name string  `json:"name" yaml:"name"`
	N    float64 `json:"n" yaml:"n"`
	P    float64 `json:"p" yaml:"p"`
	K    float64 `json:"k" yaml:"k"`
	PH   float64 `json:"ph" yaml:"ph"`
}

// profiles is ordered as presented to users; do not mutate.
var profiles = []Profile{
	{Name: Arcillosa, N: 60.0, P: 45.0, K: 35.0, PH: 7.5},
	{Name: Arenosa, N: 20.0, P: 15.0, K: 25.0, PH: 6.0},
	{Name: Limosa, N: 80.0, P: 50.0, K: 50.0, PH: 6.8},
	{Name: Negra, N: 100.0, P: 60.0, K: 50.0, PH: 6.5},
	{Name: Roja, N: 40.0, P: 55.0, K: 40.0, PH: 5.5},
}

var byName = func() map[string]Profile {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return m
}()

// Lookup returns the profile for an exact, case-sensitive soil name.
// Unknown names fail with ErrCodeUnrecognizedSoil; there is no fallback.
func Lookup(name string) (Profile, error) {
	p, ok := byName[name]
	if !ok {
		return Profile{}, apperrors.NewWithContext(apperrors.ErrCodeUnrecognizedSoil,
			UnrecognizedMessage, map[string]any{"tierra": name})
	}
	return p, nil
}

// Names returns the recognized soil names in table order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// Profiles returns a copy of the full table in display order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}
