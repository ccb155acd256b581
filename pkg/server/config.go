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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	"golang.org/x/time/rate"
)

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit       = "RATE_LIMIT"
	EnvRateLimitBurst  = "RATE_LIMIT_BURST"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are mounted behind the middleware chain, keyed by path.
	Handlers map[string]http.HandlerFunc

	// Address is the bind address; empty means all interfaces.
	Address string
	Port    int

	// Rate limiting configuration. rate.Inf disables the limiter.
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns defaults overridden by environment variables.
// Malformed values are logged and ignored.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              defaults.ServerPort,
		RateLimit:         rate.Inf, // off unless RATE_LIMIT is set
		RateLimitBurst:    defaults.ServerRateLimitBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if v, ok := envInt(EnvPort); ok && v >= 0 && v <= 65535 {
		cfg.Port = v
	}

	// match the Kubernetes termination grace period
	if v, ok := envInt(EnvShutdownTimeout); ok && v > 0 {
		cfg.ShutdownTimeout = time.Duration(v) * time.Second
	}

	if s := os.Getenv(EnvRateLimit); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			cfg.RateLimit = rate.Limit(v)
		} else {
			slog.Warn("ignoring invalid environment value", "name", EnvRateLimit, "value", s)
		}
	}

	if v, ok := envInt(EnvRateLimitBurst); ok && v > 0 {
		cfg.RateLimitBurst = v
	}

	return cfg
}

func envInt(name string) (int, bool) {
	s := os.Getenv(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "name", name, "value", s)
		return 0, false
	}
	return v, true
}
