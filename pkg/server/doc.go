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

// Package server provides the HTTP server shared by the prediction service
// and the CLI serve command.
//
// A Server is built from functional options and mounts caller handlers
// behind a fixed middleware chain:
//
//	metrics -> API version -> request ID -> panic recovery -> rate limit -> logging
//
// Every response carries CORS headers allowing any origin; preflight OPTIONS
// requests are answered with 204 before reaching a handler.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("cropd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/predecir": svc.HandlePredict,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
//	GET /         service name, version, readiness and routes
//	GET /health   liveness probe, always 200
//	GET /ready    readiness probe, 503 until the listener is up
//	GET /metrics  Prometheus metrics
//
// # Errors
//
// Errors are written as {"error": "<message>"}. The machine readable code is
// carried in the X-Error-Code header. HTTPStatusFromCode maps codes to
// statuses: unrecognized soil is 400, everything else from the prediction
// pipeline is 500.
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT and
// RATE_LIMIT_BURST from the environment. When started by systemd the server
// reports READY and STOPPING through sd_notify.
package server
