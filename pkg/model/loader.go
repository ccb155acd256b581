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
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/k8s/client"
	"github.com/mchmarny/crop-advisor/pkg/oci"
	"github.com/mchmarny/crop-advisor/pkg/serializer"
)

// Artifact base names. Each is looked up with every extension in
// ArtifactExtensions, first match wins.
const (
	ScalerArtifact     = "scaler"
	ClassifierArtifact = "modelo_cultivos_rf"
	EncoderArtifact    = "label_encoder"
)

// ArtifactExtensions lists the accepted artifact encodings in lookup order.
var ArtifactExtensions = []string{".json", ".yaml", ".yml"}

// SourceKind identifies where artifacts are read from.
type SourceKind string

const (
	SourceDir       SourceKind = "dir"
	SourceHTTP      SourceKind = "http"
	SourceConfigMap SourceKind = "configmap"
	SourceOCI       SourceKind = "oci"
)

// Source is a parsed model location.
type Source struct {
	Kind     SourceKind
	Location string
}

// ParseSource classifies s by scheme: http(s)://, cm://, oci://, otherwise a
// local directory.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Source{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "model source is empty")
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		if _, err := url.Parse(s); err != nil {
			return Source{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid model URL", err)
		}
		return Source{Kind: SourceHTTP, Location: s}, nil
	case strings.HasPrefix(s, serializer.ConfigMapURIScheme):
		if _, _, err := serializer.ParseConfigMapURI(s); err != nil {
			return Source{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid model ConfigMap URI", err)
		}
		return Source{Kind: SourceConfigMap, Location: s}, nil
	case strings.HasPrefix(s, oci.URIScheme):
		if _, err := oci.ParseReference(s); err != nil {
			return Source{}, err
		}
		return Source{Kind: SourceOCI, Location: s}, nil
	default:
		return Source{Kind: SourceDir, Location: s}, nil
	}
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	kube        client.Interface
	kubeconfig  string
	http        *serializer.HttpReader
	plainHTTP   bool
	insecureTLS bool
	maxElapsed  time.Duration
	maxRetries  uint64
}

// WithKubeClient sets the client used for ConfigMap sources.
func WithKubeClient(c client.Interface) LoadOption {
	return func(cfg *loadConfig) {
		cfg.kube = c
	}
}

// WithKubeconfig sets the kubeconfig used when no client is supplied.
func WithKubeconfig(path string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.kubeconfig = path
	}
}

// WithHTTPReader sets the reader used for HTTP sources.
func WithHTTPReader(r *serializer.HttpReader) LoadOption {
	return func(cfg *loadConfig) {
		cfg.http = r
	}
}

// WithRegistryTransport configures OCI registry access.
func WithRegistryTransport(plainHTTP, insecureTLS bool) LoadOption {
	return func(cfg *loadConfig) {
		cfg.plainHTTP = plainHTTP
		cfg.insecureTLS = insecureTLS
	}
}

// WithRetry bounds remote fetch retries.
func WithRetry(maxElapsed time.Duration, maxRetries uint64) LoadOption {
	return func(cfg *loadConfig) {
		cfg.maxElapsed = maxElapsed
		cfg.maxRetries = maxRetries
	}
}

// Load reads the scaler, classifier and label encoder from source and
// composes them into an Adapter. Any missing or invalid artifact fails the
// whole load.
func Load(ctx context.Context, source string, opts ...LoadOption) (*Adapter, error) {
	cfg := &loadConfig{
		maxElapsed: defaults.ModelFetchMaxElapsed,
		maxRetries: defaults.ModelFetchMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	src, err := ParseSource(source)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ModelLoadTimeout)
	defer cancel()

	f, cleanup, err := newFetcher(ctx, src, cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var sd ScalerDoc
	scalerFile, err := readArtifact(ctx, f, ScalerArtifact, &sd)
	if err != nil {
		return nil, err
	}
	scaler, err := NewScaler(sd)
	if err != nil {
		return nil, err
	}

	var fd ForestDoc
	forestFile, err := readArtifact(ctx, f, ClassifierArtifact, &fd)
	if err != nil {
		return nil, err
	}
	forest, err := NewForest(fd)
	if err != nil {
		return nil, err
	}

	var ed EncoderDoc
	encoderFile, err := readArtifact(ctx, f, EncoderArtifact, &ed)
	if err != nil {
		return nil, err
	}
	labels, err := NewLabels(ed)
	if err != nil {
		return nil, err
	}

	adapter, err := NewAdapter(scaler, forest, labels)
	if err != nil {
		return nil, err
	}

	slog.Info("model loaded",
		"source", src.Location,
		"kind", src.Kind,
		"scaler", scalerFile,
		"classifier", forestFile,
		"encoder", encoderFile,
		"trees", len(forest.trees),
		"classes", len(adapter.classes))

	return adapter, nil
}

// fetcher returns the bytes of one artifact file or an ErrCodeNotFound error.
type fetcher interface {
	fetch(ctx context.Context, name string) ([]byte, error)
}

func newFetcher(ctx context.Context, src Source, cfg *loadConfig) (fetcher, func(), error) {
	noop := func() {}

	switch src.Kind {
	case SourceDir:
		return dirFetcher{dir: src.Location}, noop, nil

	case SourceHTTP:
		r := cfg.http
		if r == nil {
			r = serializer.NewHttpReader()
		}
		return &httpFetcher{base: src.Location, reader: r, cfg: cfg}, noop, nil

	case SourceConfigMap:
		ns, name, err := serializer.ParseConfigMapURI(src.Location)
		if err != nil {
			return nil, noop, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid model ConfigMap URI", err)
		}
		kube := cfg.kube
		if kube == nil {
			if cfg.kubeconfig != "" {
				kube, err = client.New(cfg.kubeconfig)
			} else {
				kube, err = client.Default()
			}
			if err != nil {
				return nil, noop, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
			}
		}
		var data map[string]string
		err = retry(ctx, cfg, func() error {
			var rerr error
			data, rerr = serializer.ReadConfigMap(ctx, kube, ns, name)
			return rerr
		})
		if err != nil {
			return nil, noop, err
		}
		return configMapFetcher{data: data}, noop, nil

	case SourceOCI:
		ref, err := oci.ParseReference(src.Location)
		if err != nil {
			return nil, noop, err
		}
		dir, err := os.MkdirTemp("", "crop-model-*")
		if err != nil {
			return nil, noop, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create temp directory", err)
		}
		cleanup := func() { _ = os.RemoveAll(dir) }

		pullCtx, cancel := context.WithTimeout(ctx, defaults.OCIPullTimeout)
		defer cancel()
		err = retry(pullCtx, cfg, func() error {
			_, perr := oci.Pull(pullCtx, ref, dir, oci.PullOptions{
				PlainHTTP:   cfg.plainHTTP,
				InsecureTLS: cfg.insecureTLS,
			})
			return perr
		})
		if err != nil {
			cleanup()
			return nil, noop, err
		}
		return dirFetcher{dir: dir}, cleanup, nil

	default:
		return nil, noop, apperrors.New(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported model source %q", src.Kind))
	}
}

// readArtifact decodes the first existing base+ext file into v and returns
// its name.
func readArtifact(ctx context.Context, f fetcher, base string, v any) (string, error) {
	tried := make([]string, 0, len(ArtifactExtensions))
	for _, ext := range ArtifactExtensions {
		name := base + ext
		tried = append(tried, name)

		data, err := f.fetch(ctx, name)
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}

		format := serializer.FormatFromPath(name)
		if err := serializer.Unmarshal(format, data, v, serializer.WithStrict(true)); err != nil {
			return "", apperrors.WrapWithContext(apperrors.ErrCodeInvalidArtifact,
				fmt.Sprintf("failed to decode %s", name), err,
				map[string]any{"artifact": name})
		}
		return name, nil
	}

	return "", apperrors.NewWithContext(apperrors.ErrCodeNotFound,
		fmt.Sprintf("model artifact %s not found (tried %s)", base, strings.Join(tried, ", ")),
		map[string]any{"artifact": base})
}

// retry runs op with exponential backoff. Errors that cannot improve on
// retry stop it at once.
func retry(ctx context.Context, cfg *loadConfig, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.maxElapsed

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodeNotFound, apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeInvalidArtifact:
			return backoff.Permanent(err)
		}
		slog.Warn("model fetch failed, retrying", "attempt", attempt, "error", err)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, cfg.maxRetries), ctx))
}

type dirFetcher struct {
	dir string
}

func (d dirFetcher) fetch(_ context.Context, name string) ([]byte, error) {
	path := filepath.Join(d.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		code := apperrors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = apperrors.ErrCodeNotFound
		}
		return nil, apperrors.WrapWithContext(code, fmt.Sprintf("failed to read %s", path), err,
			map[string]any{"path": path})
	}
	return data, nil
}

type httpFetcher struct {
	base   string
	reader *serializer.HttpReader
	cfg    *loadConfig
}

func (h *httpFetcher) fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := url.JoinPath(h.base, name)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid model URL", err)
	}
	var data []byte
	err = retry(ctx, h.cfg, func() error {
		var rerr error
		data, rerr = h.reader.ReadWithContext(ctx, u)
		return rerr
	})
	return data, err
}

type configMapFetcher struct {
	data map[string]string
}

func (c configMapFetcher) fetch(_ context.Context, name string) ([]byte, error) {
	v, ok := c.data[name]
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			fmt.Sprintf("ConfigMap has no key %s", name), map[string]any{"key": name})
	}
	return []byte(v), nil
}
