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
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/crop-advisor/pkg/soil"
)

// soilTable renders the soil knowledge base.
type soilTable []soil.Profile

func (s soilTable) TableHeader() []string {
	return []string{"tierra", "n", "p", "k", "ph"}
}

func (s soilTable) TableRows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, p := range s {
		rows = append(rows, []string{p.Name, ff(p.N), ff(p.P), ff(p.K), ff(p.PH)})
	}
	return rows
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func soilsCmd() *cli.Command {
	return &cli.Command{
		Name:  "soils",
		Usage: "List the recognized soil types and their nutrient profiles",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, format, soilTable(soil.Profiles()))
		},
	}
}
