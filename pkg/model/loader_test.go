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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

var negra = feature.Vector{100, 60, 50, 25, 60, 6.5, 100}

func readTestdata(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(b)
	}
	return out
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in      string
		kind    SourceKind
		wantErr bool
	}{
		{in: "./model", kind: SourceDir},
		{in: "/var/lib/crop/model", kind: SourceDir},
		{in: "https://models.example.com/crops/v1", kind: SourceHTTP},
		{in: "http://localhost:8080/model", kind: SourceHTTP},
		{in: "cm://crops/model", kind: SourceConfigMap},
		{in: "oci://ghcr.io/acme/crop-model:v1", kind: SourceOCI},
		{in: "", wantErr: true},
		{in: "cm://crops", wantErr: true},
		{in: "oci://ghcr.io/Acme/Model", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			src, err := ParseSource(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, src.Kind)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	for _, dir := range []string{"testdata/json", "testdata/yaml"} {
		t.Run(dir, func(t *testing.T) {
			a, err := Load(context.Background(), dir)
			require.NoError(t, err)
			assert.Equal(t, testClasses, a.Classes())

			label, err := a.PredictSingle(negra)
			require.NoError(t, err)
			assert.Equal(t, "café", label)
		})
	}
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
		assert.Contains(t, err.Error(), "scaler.json")
	})

	t.Run("class count mismatch", func(t *testing.T) {
		_, err := Load(context.Background(), "testdata/broken")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact))
	})

	t.Run("undecodable artifact", func(t *testing.T) {
		dir := t.TempDir()
		for name, body := range readTestdata(t, "testdata/json") {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "scaler.json"), []byte(`{"kind":`), 0o600))

		_, err := Load(context.Background(), dir)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact))
	})

	t.Run("unknown field", func(t *testing.T) {
		dir := t.TempDir()
		for name, body := range readTestdata(t, "testdata/json") {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "label_encoder.json"),
			[]byte(`{"classes":["a"],"dtype":"object"}`), 0o600))

		_, err := Load(context.Background(), dir)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArtifact))
	})
}

func TestLoad_HTTP(t *testing.T) {
	files := readTestdata(t, "testdata/json")
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// first request fails to exercise the retry path
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body, ok := files[filepath.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	a, err := Load(context.Background(), srv.URL+"/models/v1", WithRetry(5*time.Second, 3))
	require.NoError(t, err)

	ranked, err := a.PredictRanked(negra)
	require.NoError(t, err)
	assert.Equal(t, "café", ranked[0].Crop)
	assert.GreaterOrEqual(t, calls.Load(), int32(4))
}

func TestLoad_HTTPNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL, WithRetry(5*time.Second, 3))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	// one request per scaler extension, none repeated
	assert.Equal(t, int32(len(ArtifactExtensions)), calls.Load())
}

func TestLoad_ConfigMap(t *testing.T) {
	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "crop-model", Namespace: "crops"},
		Data:       readTestdata(t, "testdata/yaml"),
	})

	a, err := Load(context.Background(), "cm://crops/crop-model", WithKubeClient(cs))
	require.NoError(t, err)

	label, err := a.PredictSingle(negra)
	require.NoError(t, err)
	assert.Equal(t, "café", label)

	_, err = Load(context.Background(), "cm://crops/missing", WithKubeClient(cs))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}
