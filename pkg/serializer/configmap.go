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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/k8s/client"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap addresses: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// FieldManager owns fields written through server-side apply.
	FieldManager = "cropctl"
)

// ParseConfigMapURI splits cm://namespace/name into its parts.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: invalid name %q", name)
	}
	return namespace, name, nil
}

// ReadConfigMap returns the data of a ConfigMap. A missing ConfigMap is
// ErrCodeNotFound.
func ReadConfigMap(ctx context.Context, c client.Interface, namespace, name string) (map[string]string, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		code := apperrors.ErrCodeUnavailable
		if k8serrors.IsNotFound(err) {
			code = apperrors.ErrCodeNotFound
		}
		return nil, apperrors.WrapWithContext(code,
			fmt.Sprintf("failed to get ConfigMap %s/%s", namespace, name), err,
			map[string]any{"namespace": namespace, "name": name})
	}

	slog.Debug("read ConfigMap",
		"namespace", namespace,
		"name", name,
		"keys", len(cm.Data))

	return cm.Data, nil
}

// ApplyConfigMap creates or replaces the data of a ConfigMap with
// server-side apply.
func ApplyConfigMap(ctx context.Context, c client.Interface, namespace, name string, data, labels map[string]string) error {
	cfg := accorev1.ConfigMap(name, namespace).
		WithLabels(labels).
		WithData(data)

	slog.Info("applying ConfigMap",
		"namespace", namespace,
		"name", name,
		"keys", len(data))

	_, err := c.CoreV1().ConfigMaps(namespace).Apply(ctx, cfg, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to apply ConfigMap %s/%s", namespace, name), err,
			map[string]any{"namespace": namespace, "name": name})
	}
	return nil
}
