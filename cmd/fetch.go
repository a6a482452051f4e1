// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/cotahist/b3"
	"github.com/penny-vault/cotahist/fixedwidth"
)

var (
	fetchDir   string
	fetchCheck bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch PERIOD...",
	Short: "Download quote archives from B3",
	Long: `fetch downloads the archives B3 publishes for each PERIOD and extracts the
quote file into --out. PERIOD is a year (2003), a month (2003-02) or a
trading day (2003-02-12).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		periods := make([]b3.Period, 0, len(args))
		for _, arg := range args {
			period, err := b3.ParsePeriod(arg)
			if err != nil {
				return err
			}
			periods = append(periods, period)
		}

		if info, err := os.Stat(fetchDir); err != nil || !info.IsDir() {
			return fixedwidth.NewNotFoundError("Dest", fetchDir)
		}

		client := b3.New(viper.GetString("b3.base_url"), viper.GetInt("b3.rate_limit"))
		for _, period := range periods {
			fn, err := client.Download(ctx, period, fetchDir)
			if err != nil {
				return err
			}

			if fetchCheck {
				file, err := readFile(ctx, fn)
				if err != nil {
					return err
				}
				if err := file.Check(); err != nil {
					return err
				}
				log.Info().Str("Period", period.String()).Int("NumRecords", len(file.Records)).Msg("downloaded file is valid")
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchDir, "out", "o", ".", "directory the quote files are written to")
	fetchCmd.Flags().BoolVar(&fetchCheck, "check", false, "decode each downloaded file")
}
