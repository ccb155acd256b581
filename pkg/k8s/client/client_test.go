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

package client

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveKubeconfig(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
			t.Errorf("ResolveKubeconfig() = %q, want /explicit", got)
		}
	})

	t.Run("env used when no explicit path", func(t *testing.T) {
		t.Setenv("KUBECONFIG", "/from/env")
		if got := ResolveKubeconfig(""); got != "/from/env" {
			t.Errorf("ResolveKubeconfig() = %q, want /from/env", got)
		}
	})

	t.Run("home config when present", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("KUBECONFIG", "")
		if err := os.MkdirAll(filepath.Join(home, ".kube"), 0o755); err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(home, ".kube", "config")
		if err := os.WriteFile(want, []byte("apiVersion: v1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := ResolveKubeconfig(""); got != want {
			t.Errorf("ResolveKubeconfig() = %q, want %q", got, want)
		}
	})

	t.Run("empty when nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("KUBECONFIG", "")
		if got := ResolveKubeconfig(""); got != "" {
			t.Errorf("ResolveKubeconfig() = %q, want empty", got)
		}
	})
}

func TestRESTConfig_InvalidPath(t *testing.T) {
	_, err := RESTConfig("/nonexistent/path/to/kubeconfig")
	if err == nil {
		t.Fatal("expected error for missing kubeconfig")
	}
	if !strings.Contains(err.Error(), "failed to build kube config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRESTConfig_SetsUserAgent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	kubeconfig := `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`
	if err := os.WriteFile(path, []byte(kubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := RESTConfig(path)
	if err != nil {
		t.Fatalf("RESTConfig() error = %v", err)
	}
	if cfg.UserAgent != UserAgent {
		t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, UserAgent)
	}
	if cfg.Host != "https://127.0.0.1:6443" {
		t.Errorf("Host = %q", cfg.Host)
	}

	if _, err := New(path); err != nil {
		t.Errorf("New() error = %v", err)
	}
}
