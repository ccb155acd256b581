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

// Package cli implements the cropctl command line.
//
// # Commands
//
// soils - List the recognized soil types:
//
//	cropctl soils --format table
//
// predict - Recommend crops locally:
//
//	cropctl predict --model ./model --soil Negra --temp 25 --hum 60 --rain 100 [--top3]
//
// The model may be a directory, an http(s):// base URL, a ConfigMap
// (cm://namespace/name) or an OCI artifact (oci://registry/repo:tag).
//
// serve - Run the HTTP prediction service:
//
//	cropctl serve --model oci://ghcr.io/acme/crop-model:v1
//
// model push - Validate and publish a model bundle:
//
//	cropctl model push --dir ./model oci://ghcr.io/acme/crop-model:v1
//	cropctl model push --dir ./model cm://crops/crop-model
//
// # Global Flags
//
//	--log-level    Logging level: debug, info, warn, error (env: LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output
//
// Commands that print results accept --format (json, yaml, table; default
// json) and --output, -o (default stdout).
//
// # Environment Variables
//
//	MODEL_SOURCE  Default for --model
//	KUBECONFIG    Kubeconfig for cm:// sources and targets
//	LOG_LEVEL     Logging verbosity
//	PORT          Port for serve (default 5000)
package cli
