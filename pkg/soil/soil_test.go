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

package soil

import (
	"testing"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

func TestLookup_KnownSoils(t *testing.T) {
	tests := []struct {
		name string
		want Profile
	}{
		{"Arcillosa", Profile{Name: "Arcillosa", N: 60.0, P: 45.0, K: 35.0, PH: 7.5}},
		{"Arenosa", Profile{Name: "Arenosa", N: 20.0, P: 15.0, K: 25.0, PH: 6.0}},
		{"Limosa", Profile{Name: "Limosa", N: 80.0, P: 50.0, K: 50.0, PH: 6.8}},
		{"Negra", Profile{Name: "Negra", N: 100.0, P: 60.0, K: 50.0, PH: 6.5}},
		{"Roja", Profile{Name: "Roja", N: 40.0, P: 55.0, K: 40.0, PH: 5.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookup_Unrecognized(t *testing.T) {
	for _, name := range []string{"Pedregosa", "negra", "NEGRA", " Negra", "Negra ", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := Lookup(name)
			if err == nil {
				t.Fatalf("Lookup(%q) expected error", name)
			}
			if !apperrors.IsCode(err, apperrors.ErrCodeUnrecognizedSoil) {
				t.Errorf("expected %s, got %v", apperrors.ErrCodeUnrecognizedSoil, err)
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := []string{"Arcillosa", "Arenosa", "Limosa", "Negra", "Roja"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProfilesReturnsCopy(t *testing.T) {
	ps := Profiles()
	ps[0].N = -1

	p, err := Lookup(Arcillosa)
	if err != nil {
		t.Fatal(err)
	}
	if p.N != 60.0 {
		t.Errorf("table was mutated through Profiles(): N = %v", p.N)
	}
}
