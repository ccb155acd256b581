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

// Package api wires the crop prediction service: it loads the model, builds
// the recommendation service and runs the HTTP server until shutdown.
//
// # Usage
//
//	if err := api.Serve(ctx, api.ConfigFromEnv()); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /predecir       - single most suitable crop
//   - POST /predecir/top3  - three most viable crops with percentages
//
// Both accept a JSON object:
//
//	{"tierra": "Negra", "temp": 25, "hum": 60, "lluvia": 100}
//
// Example:
//
//	curl -X POST http://localhost:5000/predecir/top3 \
//	  -H "Content-Type: application/json" \
//	  -d '{"tierra": "Negra", "temp": 25, "hum": 60, "lluvia": 100}'
//
// System endpoints: GET /, /health, /ready and /metrics.
//
// # Configuration
//
//   - MODEL_SOURCE: model location (default ./model); a directory,
//     http(s):// base URL, cm://namespace/name or oci://registry/repo:tag
//   - KUBECONFIG: kubeconfig for cm:// sources outside a cluster
//   - PORT: HTTP server port (default: 5000)
//   - LOG_LEVEL: logging level (debug, info, warn, error)
//
// A model that fails to load is fatal; the port is never bound.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/crop-advisor/pkg/api.version=1.0.0'"
package api
