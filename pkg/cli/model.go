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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/crop-advisor/pkg/defaults"
	"github.com/mchmarny/crop-advisor/pkg/k8s/client"
	"github.com/mchmarny/crop-advisor/pkg/model"
	"github.com/mchmarny/crop-advisor/pkg/oci"
	"github.com/mchmarny/crop-advisor/pkg/serializer"
)

// PublishResult describes a published model bundle.
type PublishResult struct {
	Target string   `json:"target" yaml:"target"`
	Digest string   `json:"digest,omitempty" yaml:"digest,omitempty"`
	Files  []string `json:"files" yaml:"files"`
}

func modelCmd() *cli.Command {
	return &cli.Command{
		Name:  "model",
		Usage: "Manage model artifact bundles",
		Commands: []*cli.Command{
			modelPushCmd(),
		},
	}
}

func modelPushCmd() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Validate a model directory and publish it to an OCI registry or ConfigMap",
		ArgsUsage: "oci://registry/repo[:tag] | cm://namespace/name",
		Description: `Loads the model in --dir to make sure it is usable, then publishes
the scaler, classifier and label encoder files:

  cropctl model push --dir ./model oci://ghcr.io/acme/crop-model:v1
  cropctl model push --dir ./model cm://crops/crop-model

The result can be served with --model (or MODEL_SOURCE) set to the same URI.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "directory holding the model artifacts",
				Required: true,
			},
			kubeconfigFlag(),
			outputFlag(),
			formatFlag(),
		}, registryFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one target, got %d", cmd.NArg())
			}
			target := strings.TrimSpace(cmd.Args().First())
			dir := cmd.String("dir")

			bundle, err := model.ReadBundle(ctx, dir)
			if err != nil {
				return fmt.Errorf("invalid model in %q: %w", dir, err)
			}

			var res *PublishResult
			switch {
			case strings.HasPrefix(target, oci.URIScheme):
				res, err = pushOCI(ctx, cmd, dir, target)
			case strings.HasPrefix(target, serializer.ConfigMapURIScheme):
				res, err = pushConfigMap(ctx, cmd, target, bundle)
			default:
				return fmt.Errorf("unsupported target %q, expected %s or %s URI",
					target, oci.URIScheme, serializer.ConfigMapURIScheme)
			}
			if err != nil {
				return err
			}

			slog.Info("model published", "target", res.Target, "digest", res.Digest, "files", len(res.Files))
			return writeOutput(ctx, cmd, format, res)
		},
	}
}

func pushOCI(ctx context.Context, cmd *cli.Command, dir, target string) (*PublishResult, error) {
	ref, err := oci.ParseReference(target)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	pushed, err := oci.Push(ctx, oci.PushOptions{
		SourceDir:   dir,
		Reference:   ref,
		PlainHTTP:   cmd.Bool(flagPlainHTTP),
		InsecureTLS: cmd.Bool(flagInsecureTLS),
		Annotations: map[string]string{
			"org.opencontainers.image.version": version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to push model to %s: %w", ref, err)
	}

	return &PublishResult{
		Target: pushed.Reference,
		Digest: pushed.Digest,
		Files:  pushed.Files,
	}, nil
}

func pushConfigMap(ctx context.Context, cmd *cli.Command, target string, bundle map[string]string) (*PublishResult, error) {
	ns, name, err := serializer.ParseConfigMapURI(target)
	if err != nil {
		return nil, err
	}

	kube, err := client.New(cmd.String(flagKubeconfig))
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	labels := map[string]string{
		"app.kubernetes.io/name":       "crop-advisor",
		"app.kubernetes.io/component":  "model",
		"app.kubernetes.io/managed-by": serializer.FieldManager,
	}
	if err := serializer.ApplyConfigMap(ctx, kube, ns, name, bundle, labels); err != nil {
		return nil, fmt.Errorf("failed to apply ConfigMap %s/%s: %w", ns, name, err)
	}

	files := make([]string, 0, len(bundle))
	for _, base := range model.ArtifactNames {
		for k := range bundle {
			if strings.HasPrefix(k, base+".") {
				files = append(files, k)
			}
		}
	}

	return &PublishResult{
		Target: serializer.ConfigMapURIScheme + ns + "/" + name,
		Files:  files,
	}, nil
}
