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

	"github.com/mchmarny/crop-advisor/pkg/api"
	"github.com/mchmarny/crop-advisor/pkg/logging"
	"github.com/mchmarny/crop-advisor/pkg/serializer"
)

// Flag names shared by several commands.
const (
	flagLogLevel    = "log-level"
	flagOutput      = "output"
	flagFormat      = "format"
	flagModel       = "model"
	flagKubeconfig  = "kubeconfig"
	flagPlainHTTP   = "plain-http"
	flagInsecureTLS = "insecure-tls"
)

// Flags are built per command; urfave flags hold parsed state.

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagLogLevel,
		Value:   "info",
		Usage:   "log level (debug, info, warn, error)",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagModel,
		Aliases: []string{"m"},
		Value:   api.DefaultModelSource,
		Usage:   "model source: directory, http(s):// base URL, cm://namespace/name or oci://registry/repo:tag",
		Sources: cli.EnvVars(api.EnvModelSource),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagKubeconfig,
		Aliases: []string{"k"},
		Usage:   "path to kubeconfig for cm:// sources (default: $KUBECONFIG, ~/.kube/config or in-cluster)",
	}
}

func registryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  flagPlainHTTP,
			Usage: "talk to the OCI registry over plain HTTP",
		},
		&cli.BoolFlag{
			Name:  flagInsecureTLS,
			Usage: "skip TLS certificate verification for the OCI registry",
		},
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(flagFormat))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// writeOutput serializes v to --output, or the command writer, in the
// chosen format.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	var ser *serializer.Writer
	if path := cmd.String(flagOutput); path != "" {
		ser = serializer.NewFileWriterOrStdout(format, path)
	} else {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return ser.Serialize(ctx, v)
}

func configFromCmd(cmd *cli.Command) api.Config {
	return api.Config{
		ModelSource: cmd.String(flagModel),
		Kubeconfig:  cmd.String(flagKubeconfig),
		PlainHTTP:   cmd.Bool(flagPlainHTTP),
		InsecureTLS: cmd.Bool(flagInsecureTLS),
		LogLevel:    cmd.String(flagLogLevel),
	}
}
