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
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mchmarny/crop-advisor/pkg/logging"
	"github.com/mchmarny/crop-advisor/pkg/model"
	"github.com/mchmarny/crop-advisor/pkg/recommend"
	"github.com/mchmarny/crop-advisor/pkg/server"
)

const (
	name           = "cropd"
	versionDefault = "dev"

	// EnvModelSource selects where the model artifacts are loaded from.
	EnvModelSource = "MODEL_SOURCE"

	// DefaultModelSource is the artifact directory used when nothing is set.
	DefaultModelSource = "./model"

	// Route paths.
	PathPredict = "/predecir"
	PathRanked  = "/predecir/top3"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mchmarny/crop-advisor/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Config selects the model and how it is fetched.
type Config struct {
	// ModelSource is a directory, http(s) base URL, cm:// or oci:// URI.
	ModelSource string
	// Kubeconfig is used for cm:// sources; empty means discovery.
	Kubeconfig string
	// PlainHTTP and InsecureTLS apply to oci:// sources.
	PlainHTTP   bool
	InsecureTLS bool
	// LogLevel overrides LOG_LEVEL when set.
	LogLevel string
}

// ConfigFromEnv returns a Config populated from the environment.
func ConfigFromEnv() Config {
	src := os.Getenv(EnvModelSource)
	if src == "" {
		src = DefaultModelSource
	}
	return Config{ModelSource: src}
}

// Routes maps the prediction paths to the service handlers.
func Routes(svc *recommend.Service) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		PathPredict: svc.HandlePredict,
		PathRanked:  svc.HandleRanked,
	}
}

// NewService loads the model named by cfg and returns the service around it.
func NewService(ctx context.Context, cfg Config) (*recommend.Service, error) {
	src := cfg.ModelSource
	if src == "" {
		src = DefaultModelSource
	}

	adapter, err := model.Load(ctx, src,
		model.WithKubeconfig(cfg.Kubeconfig),
		model.WithRegistryTransport(cfg.PlainHTTP, cfg.InsecureTLS),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %q: %w", src, err)
	}

	return recommend.NewService(adapter)
}

// Serve loads the model, then runs the API server and blocks until ctx is
// canceled or the process is signaled. Model load failure is returned before
// anything is bound.
func Serve(ctx context.Context, cfg Config) error {
	if cfg.LogLevel != "" {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	} else {
		logging.SetDefaultStructuredLogger(name, version)
	}
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"model", cfg.ModelSource,
	)

	svc, err := NewService(ctx, cfg)
	if err != nil {
		slog.Error("model load failed", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(svc)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
