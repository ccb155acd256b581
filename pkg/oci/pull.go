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

package oci

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/file"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

// PullOptions configures a bundle pull.
type PullOptions struct {
	PlainHTTP   bool
	InsecureTLS bool
}

// PullResult describes a pulled bundle.
type PullResult struct {
	Digest string
	Files  []string
}

// Pull copies the bundle at ref into dir, writing each layer under its
// title annotation.
func Pull(ctx context.Context, ref *Reference, dir string, opts PullOptions) (*PullResult, error) {
	if ref == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	repo, err := newRepository(ref, opts.PlainHTTP, opts.InsecureTLS)
	if err != nil {
		return nil, err
	}

	slog.Info("pulling model bundle", "reference", ref.ImageReference(), "dir", dir)
	return Fetch(ctx, repo, ref.Tag, dir)
}

// Fetch copies the manifest tagged tag from src into a file store at dir.
func Fetch(ctx context.Context, src oras.ReadOnlyTarget, tag, dir string) (*PullResult, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve destination directory", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create destination directory", err)
	}

	fs, err := file.New(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	desc, err := oras.Copy(ctx, src, tag, fs, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			"failed to pull model bundle", err, map[string]any{"tag": tag})
	}
	raw, err := content.FetchAll(ctx, fs, desc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to read manifest", err)
	}
	var manifest ociv1.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidArtifact, "failed to decode manifest", err)
	}
	if manifest.ArtifactType != ArtifactType {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidArtifact,
			"not a model bundle", map[string]any{"artifactType": manifest.ArtifactType})
	}

	files := make([]string, 0, len(manifest.Layers))
	for _, l := range manifest.Layers {
		if title := l.Annotations[ociv1.AnnotationTitle]; title != "" {
			files = append(files, title)
		}
	}

	return &PullResult{
		Digest: desc.Digest.String(),
		Files:  files,
	}, nil
}
