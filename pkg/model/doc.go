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

// Package model runs the crop classifier: a feature scaler, a tree-ensemble
// classifier and a label encoder composed behind an immutable Adapter.
//
// The three pieces are capability interfaces so the pipeline does not depend
// on a particular backend. The backends shipped here evaluate artifacts
// exported from scikit-learn (StandardScaler or MinMaxScaler parameters, the
// tree arrays of a RandomForestClassifier and the LabelEncoder classes) as
// JSON or YAML documents.
//
// Artifacts are loaded once with Load from a local directory, an HTTP base
// URL, a Kubernetes ConfigMap or an OCI registry:
//
//	adapter, err := model.Load(ctx, "oci://ghcr.io/acme/crop-model:v1")
//	if err != nil {
//	    return err
//	}
//	label, err := adapter.PredictSingle(vec)
//
// An Adapter holds no mutable state and is safe for concurrent use.
package model
