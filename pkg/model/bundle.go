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

package model

import (
	"context"
	"fmt"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// ArtifactNames lists the artifact base names in load order.
var ArtifactNames = []string{ScalerArtifact, ClassifierArtifact, EncoderArtifact}

// ReadBundle validates the model in dir by loading it, then returns the raw
// artifact files keyed by file name. The result is suitable as ConfigMap data
// for a cm:// source.
func ReadBundle(ctx context.Context, dir string) (map[string]string, error) {
	if _, err := Load(ctx, dir); err != nil {
		return nil, err
	}

	f := dirFetcher{dir: dir}
	out := make(map[string]string, len(ArtifactNames))
	for _, base := range ArtifactNames {
		found := false
		for _, ext := range ArtifactExtensions {
			data, err := f.fetch(ctx, base+ext)
			if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out[base+ext] = string(data)
			found = true
			break
		}
		if !found {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, fmt.Sprintf("model artifact %s not found in %s", base, dir))
		}
	}
	return out, nil
}
