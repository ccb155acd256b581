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

// Package defaults provides centralized configuration constants for the crop
// advisor service.
//
// # Timeout Categories
//
//   - Server timeouts: HTTP server configuration and request limits
//   - Model loading: artifact load and remote fetch retry bounds
//   - HTTP client timeouts: outbound artifact downloads
//   - Kubernetes timeouts: ConfigMap model sources
//   - OCI timeouts: registry pull and push of model bundles
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ModelLoadTimeout)
//	defer cancel()
package defaults
