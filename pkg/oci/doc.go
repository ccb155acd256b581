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

// Package oci publishes and retrieves model bundles in OCI registries
// using ORAS.
//
// A bundle is an OCI 1.1 manifest of type ArtifactType whose layers are the
// individual artifact files (scaler, classifier, label encoder), each named by
// its org.opencontainers.image.title annotation. Pulling writes every layer
// back to a directory under that name, so a pulled bundle loads exactly like
// a local model directory.
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/crop-model:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{SourceDir: "./model", Reference: ref})
//
//	pulled, err := oci.Pull(ctx, ref, dir, oci.PullOptions{})
//
// # Authentication
//
// Registry credentials come from the Docker configuration
// (~/.docker/config.json) and its credential helpers.
package oci
