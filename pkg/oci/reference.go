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
	"fmt"
	"regexp"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
)

const (
	// URIScheme prefixes registry addresses: oci://registry/repository:tag.
	URIScheme = "oci://"

	// DefaultTag is used when a reference carries no tag.
	DefaultTag = "latest"
)

var registryPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?(:[0-9]+)?$`)

// Reference is a parsed model bundle location in a registry.
type Reference struct {
	Registry   string
	Repository string
	Tag        string
}

// ParseReference parses oci://registry/repository[:tag]. A missing tag
// becomes DefaultTag. Digest references are rejected; bundles are addressed
// by tag.
func ParseReference(uri string) (*Reference, error) {
	if !strings.HasPrefix(uri, URIScheme) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference must start with %s", URIScheme))
	}

	named, err := reference.ParseNormalizedNamed(strings.TrimPrefix(uri, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := named.(reference.Digested); ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			"digest references are not supported, use a tag")
	}

	ref := &Reference{
		Registry:   reference.Domain(named),
		Repository: reference.Path(named),
		Tag:        DefaultTag,
	}
	if tagged, ok := named.(reference.Tagged); ok {
		ref.Tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(ref.Registry, ref.Repository); err != nil {
		return nil, err
	}
	return ref, nil
}

// ValidateRegistryReference checks the registry host and repository path.
func ValidateRegistryReference(registry, repository string) error {
	if !registryPattern.MatchString(registry) {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid registry host %q", registry),
			map[string]any{"registry": registry})
	}
	if repository == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "repository is required")
	}
	return nil
}

// String returns the oci:// form.
func (r *Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository:tag without the scheme.
func (r *Reference) ImageReference() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// RepositoryReference returns registry/repository.
func (r *Reference) RepositoryReference() string {
	return r.Registry + "/" + r.Repository
}
