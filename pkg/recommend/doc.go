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

// Package recommend turns a grower's request (soil type plus current
// temperature, humidity and rainfall) into crop recommendations.
//
// The flow is the same for both variants:
//
//	parse body -> coerce numbers -> soil lookup -> feature vector -> model
//
// Field extraction and numeric coercion run before the soil lookup, so a
// request with an unknown soil and a non-numeric value fails with the
// coercion error rather than the unknown soil error.
//
// Handlers write {"error": "..."} bodies through the server package: an
// unknown soil is a 400 and every other failure is a 500.
package recommend
