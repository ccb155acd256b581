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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBundle(t *testing.T) {
	tests := []struct {
		dir  string
		want []string
	}{
		{"testdata/json", []string{"scaler.json", "modelo_cultivos_rf.json", "label_encoder.json"}},
		{"testdata/yaml", []string{"scaler.yaml", "modelo_cultivos_rf.yml", "label_encoder.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			data, err := ReadBundle(context.Background(), tt.dir)
			require.NoError(t, err)
			require.Len(t, data, len(tt.want))
			for _, name := range tt.want {
				assert.NotEmpty(t, data[name], name)
			}
		})
	}
}

func TestReadBundle_Invalid(t *testing.T) {
	_, err := ReadBundle(context.Background(), "testdata/broken")
	require.Error(t, err)

	_, err = ReadBundle(context.Background(), t.TempDir())
	require.Error(t, err)
}
