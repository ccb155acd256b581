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

package defaults

import "time"

// Server defaults for the HTTP service.
const (
	// ServerPort is the port the prediction service listens on.
	ServerPort = 5000

	// ServerReadTimeout is the maximum duration for reading the entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerRateLimitBurst is the limiter burst once RATE_LIMIT enables it.
	ServerRateLimitBurst = 200

	// MaxRequestBodyBytes caps prediction payloads; the body holds four fields.
	MaxRequestBodyBytes = 64 << 10
)

// Model loading timeouts. Loading happens once at startup.
const (
	// ModelLoadTimeout bounds the whole artifact load, all sources included.
	ModelLoadTimeout = 2 * time.Minute

	// ModelFetchMaxElapsed bounds retries of a single remote artifact fetch.
	ModelFetchMaxElapsed = 30 * time.Second

	// ModelFetchMaxRetries bounds the number of attempts of a remote fetch.
	ModelFetchMaxRetries = 5
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// ConfigMapReadTimeout is the timeout for reading model ConfigMaps.
	ConfigMapReadTimeout = 30 * time.Second
)

// OCI registry timeouts.
const (
	// OCIPullTimeout bounds pulling a model bundle from a registry.
	OCIPullTimeout = time.Minute

	// OCIPushTimeout bounds publishing a model bundle to a registry.
	OCIPushTimeout = 5 * time.Minute
)
