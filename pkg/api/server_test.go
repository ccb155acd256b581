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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/crop-advisor/pkg/server"
	"github.com/mchmarny/crop-advisor/pkg/soil"
)

// The bundled demo model lives at the repository root.
const demoModel = "../../model"

func TestConstants(t *testing.T) {
	assert.Equal(t, "cropd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvModelSource, "")
	assert.Equal(t, DefaultModelSource, ConfigFromEnv().ModelSource)

	t.Setenv(EnvModelSource, "oci://ghcr.io/acme/crops:v1")
	assert.Equal(t, "oci://ghcr.io/acme/crops:v1", ConfigFromEnv().ModelSource)
}

func TestNewService_LoadFailure(t *testing.T) {
	_, err := NewService(context.Background(), Config{ModelSource: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load model")
}

func TestServe_LoadFailureDoesNotBind(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := Serve(ctx, Config{ModelSource: t.TempDir(), LogLevel: "error"})
	require.Error(t, err)
}

func demoHandler(t *testing.T) http.Handler {
	t.Helper()
	svc, err := NewService(context.Background(), Config{ModelSource: demoModel})
	require.NoError(t, err)

	routes := Routes(svc)
	require.Len(t, routes, 2)

	return server.New(server.WithHandler(routes)).Handler()
}

func TestDemoModel_AllSoils(t *testing.T) {
	h := demoHandler(t)

	for _, s := range soil.Names() {
		t.Run(s, func(t *testing.T) {
			body := `{"tierra": "` + s + `", "temp": 25, "hum": 60, "lluvia": 100}`

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, PathPredict, strings.NewReader(body)))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var single map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &single))
			assert.NotEmpty(t, single["cultivo_ideal"])
			assert.Equal(t, "Para tierra "+s+" y clima actual, te recomiendo: "+single["cultivo_ideal"], single["mensaje"])

			w = httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, PathRanked, strings.NewReader(body)))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var ranked struct {
				Top []struct {
					Crop      string  `json:"cultivo"`
					Viability float64 `json:"viabilidad"`
				} `json:"top_3_recomendaciones"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
			require.Len(t, ranked.Top, 3)
			assert.Equal(t, single["cultivo_ideal"], ranked.Top[0].Crop)
		})
	}
}

func TestDemoModel_UnknownSoil(t *testing.T) {
	h := demoHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, PathPredict,
		strings.NewReader(`{"tierra": "Pedregosa", "temp": 25, "hum": 60, "lluvia": 100}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Tipo de tierra no reconocido"}`, w.Body.String())
}

func TestDemoModel_ConcurrentRequests(t *testing.T) {
	h := demoHandler(t)
	body := `{"tierra": "Negra", "temp": 25, "hum": 60, "lluvia": 100}`

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, PathRanked, strings.NewReader(body)))
	require.Equal(t, http.StatusOK, first.Code)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, PathRanked, strings.NewReader(body)))
			results[i] = w.Body.String()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first.Body.String(), r)
	}
}
