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
	"errors"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/cotahist/library"
)

var loadFigi bool

var loadCmd = &cobra.Command{
	Use:   "load PATH...",
	Short: "Load quotes into the library database",
	Long: `load imports every quote of each COTAHIST file into the PostgreSQL
database configured in db.url. Quotes already present for the same trading
day, ticker and market are replaced. Run init first to create the schema.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if viper.GetString("db.url") == "" {
			return errors.New("db.url is not configured, run cotahist init first")
		}

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			return err
		}
		defer myLibrary.Close()

		var known map[string]string
		if loadFigi {
			if known, err = myLibrary.CompositeFigis(ctx); err != nil {
				return err
			}
		}

		for _, path := range args {
			file, err := readFile(ctx, path)
			if err != nil {
				return err
			}

			if err := file.Check(); err != nil {
				log.Warn().Err(err).Str("FileName", path).Msg("footer count does not match the number of records")
			}

			var figis map[string]string
			if loadFigi {
				if figis, err = lookupFigis(ctx, file, known); err != nil {
					log.Warn().Err(err).Msg("figi lookup incomplete")
				}
			}

			entry, err := library.NewImport(filepath.Base(path), file)
			if err != nil {
				return err
			}

			if err := myLibrary.SaveFile(ctx, entry, file, figis); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadFigi, "figi", false, "add composite FIGIs looked up on OpenFIGI")
}
