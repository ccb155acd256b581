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
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/crop-advisor/pkg/api"
	"github.com/mchmarny/crop-advisor/pkg/recommend"
	"github.com/mchmarny/crop-advisor/pkg/soil"
)

func predictCmd() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Recommend crops for a soil type and climate using a local or remote model",
		Description: fmt.Sprintf(`Runs the same pipeline as the HTTP service without starting a server.

Either pass the values as flags:

  cropctl predict --soil Negra --temp 25 --hum 60 --rain 100 --top3

or a request body, as sent to the service, with --request (use - for stdin):

  echo '{"tierra": "Negra", "temp": 25, "hum": 60, "lluvia": 100}' | cropctl predict --request -

Recognized soils: %v`, soil.Names()),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "soil",
				Aliases: []string{"s"},
				Usage:   "soil type (tierra)",
			},
			&cli.FloatFlag{
				Name:  "temp",
				Usage: "temperature in degrees Celsius",
			},
			&cli.FloatFlag{
				Name:  "hum",
				Usage: "relative humidity in percent",
			},
			&cli.FloatFlag{
				Name:  "rain",
				Usage: "rainfall in millimeters",
			},
			&cli.StringFlag{
				Name:    "request",
				Aliases: []string{"r"},
				Usage:   "path to a JSON request body, - for stdin; overrides the value flags",
			},
			&cli.BoolFlag{
				Name:  "top3",
				Usage: "return the three most viable crops with percentages",
			},
			modelFlag(),
			kubeconfigFlag(),
			outputFlag(),
			formatFlag(),
		}, registryFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			req, err := requestFromCmd(cmd)
			if err != nil {
				return err
			}

			svc, err := api.NewService(ctx, configFromCmd(cmd))
			if err != nil {
				return err
			}

			var result any
			if cmd.Bool("top3") {
				result, err = svc.RecommendRanked(ctx, req)
			} else {
				result, err = svc.Recommend(ctx, req)
			}
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			return writeOutput(ctx, cmd, format, result)
		},
	}
}

// requestFromCmd builds a request from --request or the value flags.
func requestFromCmd(cmd *cli.Command) (recommend.Request, error) {
	if path := cmd.String("request"); path != "" {
		var in io.Reader = cmd.Root().Reader
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return recommend.Request{}, fmt.Errorf("failed to open request %q: %w", path, err)
			}
			defer f.Close()
			in = f
		}
		if in == nil {
			in = os.Stdin
		}
		return recommend.ParseRequest(in)
	}

	for _, name := range []string{"soil", "temp", "hum", "rain"} {
		if !cmd.IsSet(name) {
			return recommend.Request{}, fmt.Errorf("--%s is required unless --request is set", name)
		}
	}

	return recommend.Request{
		Soil:        cmd.String("soil"),
		Temperature: cmd.Float("temp"),
		Humidity:    cmd.Float("hum"),
		Rainfall:    cmd.Float("rain"),
	}, nil
}
