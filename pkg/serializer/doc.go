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

// Package serializer encodes and decodes the structured data crop-advisor
// exchanges: HTTP JSON responses, model artifacts fetched from files, URLs or
// ConfigMaps, and CLI output.
//
// Supported formats:
//   - JSON: machine-readable, indented
//   - YAML: human-readable configuration
//   - Table: CLI-only tabular rendering (write-only)
//
// HTTP responses are buffered before headers are written so an encoding
// failure never produces a partial body:
//
//	serializer.RespondJSON(w, http.StatusOK, result)
//
// CLI output goes through a Writer:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// Remote artifacts are fetched with HttpReader, which retries nothing on its
// own; callers decide the retry policy. ConfigMaps are addressed with
// cm://namespace/name URIs.
package serializer
