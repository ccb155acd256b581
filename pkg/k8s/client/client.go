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
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// UserAgent identifies crop-advisor requests in API server audit logs.
const UserAgent = "crop-advisor"

// Interface is kubernetes.Interface; tests substitute the client-go fake.
type Interface = kubernetes.Interface

var (
	defaultOnce   sync.Once
	defaultClient Interface
	defaultErr    error
)

// Default returns a process-wide client built from discovered configuration.
// The first result, success or failure, is cached.
func Default() (Interface, error) {
	defaultOnce.Do(func() {
		defaultClient, defaultErr = New("")
	})
	return defaultClient, defaultErr
}

// New builds a client from kubeconfig, or from discovery when it is empty.
func New(kubeconfig string) (Interface, error) {
	cfg, err := RESTConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, nil
}

// RESTConfig resolves the kubeconfig path and loads it. An empty resolved
// path means in-cluster service account credentials.
func RESTConfig(kubeconfig string) (*rest.Config, error) {
	path := ResolveKubeconfig(kubeconfig)

	var cfg *rest.Config
	var err error
	if path == "" {
		cfg, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		cfg, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}
	cfg.UserAgent = UserAgent
	return cfg, nil
}

// ResolveKubeconfig picks the kubeconfig in order: explicit, $KUBECONFIG,
// ~/.kube/config if present. It returns "" when none applies.
func ResolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}
