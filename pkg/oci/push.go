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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

const (
	// ArtifactType marks a manifest as a crop-advisor model bundle.
	ArtifactType = "application/vnd.crop-advisor.model.v1"

	// MediaTypeArtifactJSON is the layer type of a JSON model artifact.
	MediaTypeArtifactJSON = "application/vnd.crop-advisor.model.artifact.v1+json"

	// MediaTypeArtifactYAML is the layer type of a YAML model artifact.
	MediaTypeArtifactYAML = "application/vnd.crop-advisor.model.artifact.v1+yaml"
)

// PushOptions configures a bundle push.
type PushOptions struct {
	// SourceDir holds the artifact files; only top-level .json/.yaml/.yml
	// files are pushed, one layer each.
	SourceDir string
	// Reference is the destination.
	Reference *Reference
	// PlainHTTP talks to the registry without TLS.
	PlainHTTP bool
	// InsecureTLS skips certificate verification.
	InsecureTLS bool
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PushResult describes a pushed bundle.
type PushResult struct {
	Digest    string
	Reference string
	Files     []string
}

// Push packs the artifact files of SourceDir into a manifest and copies it
// to the registry.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	absDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve source directory", err)
	}

	fs, err := file.New(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	files, err := artifactFiles(absDir)
	if err != nil {
		return nil, err
	}

	manifest, err := Pack(ctx, fs, absDir, files, opts.Reference.Tag, opts.Annotations)
	if err != nil {
		return nil, err
	}

	repo, err := newRepository(opts.Reference, opts.PlainHTTP, opts.InsecureTLS)
	if err != nil {
		return nil, err
	}

	slog.Info("pushing model bundle",
		"reference", opts.Reference.ImageReference(),
		"files", len(files),
		"manifest", manifest.Digest.String())

	desc, err := oras.Copy(ctx, fs, opts.Reference.Tag, repo, opts.Reference.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push model bundle", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: opts.Reference.ImageReference(),
		Files:     files,
	}, nil
}

// Pack adds each named file in dir to the store as a layer, packs an OCI
// 1.1 manifest of ArtifactType and tags it.
func Pack(ctx context.Context, fs *file.Store, dir string, files []string, tag string, annotations map[string]string) (ociv1.Descriptor, error) {
	if len(files) == 0 {
		return ociv1.Descriptor{}, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"no model artifacts to push", map[string]any{"dir": dir})
	}
	if tag == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required")
	}

	layers := make([]ociv1.Descriptor, 0, len(files))
	for _, name := range files {
		desc, err := fs.Add(ctx, name, mediaTypeFor(name), filepath.Join(dir, name))
		if err != nil {
			return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal,
				fmt.Sprintf("failed to add %s to store", name), err)
		}
		layers = append(layers, desc)
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              layers,
			ManifestAnnotations: annotations,
		})
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	if err := fs.Tag(ctx, manifest, tag); err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}
	return manifest, nil
}

// artifactFiles lists the top-level artifact files of dir in name order.
func artifactFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "failed to read source directory", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func mediaTypeFor(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return MediaTypeArtifactJSON
	}
	return MediaTypeArtifactYAML
}
