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
	"fmt"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// EncoderDoc is the serialized form of a fitted label encoder.
type EncoderDoc struct {
	Classes []string `json:"classes" yaml:"classes"`
}

// Labels decodes class indices into crop names.
type Labels struct {
	classes []string
}

// NewLabels builds a Labels from its document. Classes must be non-empty
// and unique.
func NewLabels(doc EncoderDoc) (*Labels, error) {
	if len(doc.Classes) == 0 {
		return nil, invalidArtifact("label encoder", "no classes")
	}
	seen := make(map[string]struct{}, len(doc.Classes))
	for _, c := range doc.Classes {
		if c == "" {
			return nil, invalidArtifact("label encoder", "empty class name")
		}
		if _, dup := seen[c]; dup {
			return nil, invalidArtifact("label encoder", fmt.Sprintf("duplicate class %q", c))
		}
		seen[c] = struct{}{}
	}
	return &Labels{classes: append([]string(nil), doc.Classes...)}, nil
}

// Decode returns the name of class idx.
func (l *Labels) Decode(idx int) (string, error) {
	if idx < 0 || idx >= len(l.classes) {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInference,
			fmt.Sprintf("y contains previously unseen labels: [%d]", idx),
			map[string]any{"index": idx})
	}
	return l.classes[idx], nil
}

// ClassNames returns a copy of the class names in index order.
func (l *Labels) ClassNames() []string {
	return append([]string(nil), l.classes...)
}
