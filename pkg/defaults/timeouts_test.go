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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, time.Second, ServerReadTimeout},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Model loading
		{"ModelLoadTimeout", ModelLoadTimeout, 30 * time.Second, 10 * time.Minute},
		{"ModelFetchMaxElapsed", ModelFetchMaxElapsed, 5 * time.Second, ModelLoadTimeout},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 120 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, time.Second, 30 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, time.Second, 30 * time.Second},
		{"HTTPResponseHeaderTimeout", HTTPResponseHeaderTimeout, time.Second, 60 * time.Second},

		// K8s and OCI
		{"ConfigMapReadTimeout", ConfigMapReadTimeout, 5 * time.Second, 120 * time.Second},
		{"OCIPullTimeout", OCIPullTimeout, 10 * time.Second, OCIPushTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s = %v, below minimum %v", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s = %v, above maximum %v", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestServerDefaults(t *testing.T) {
	if ServerPort != 5000 {
		t.Errorf("ServerPort = %d, want 5000", ServerPort)
	}
	if ModelFetchMaxRetries < 1 {
		t.Errorf("ModelFetchMaxRetries must allow at least one attempt, got %d", ModelFetchMaxRetries)
	}
	if MaxRequestBodyBytes <= 0 {
		t.Errorf("MaxRequestBodyBytes must be positive, got %d", MaxRequestBodyBytes)
	}
}
