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

	"github.com/penny-vault/cotahist/data"
	"github.com/penny-vault/cotahist/fixedwidth"
)

var parseCmd = &cobra.Command{
	Use:   "parse PATH DEST",
	Short: "Convert a COTAHIST file to JSON documents",
	Long: `parse decodes the COTAHIST file at PATH and stores one canonical JSON
document per line in the existing directory DEST: header.json, footer.json
and record-N.json for each quote, N counting from 0.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, dest := args[0], args[1]

		if _, err := os.Stat(path); err != nil {
			return fixedwidth.NewNotFoundError("Path", path)
		}

		if info, err := os.Stat(dest); err != nil || !info.IsDir() {
			return fixedwidth.NewNotFoundError("Dest", dest)
		}

		ctx := context.Background()
		file, err := readFile(ctx, path)
		if err != nil {
			return err
		}

		if err := data.WriteJSONDir(ctx, dest, file, viper.GetInt("parse.workers")); err != nil {
			return err
		}

		log.Info().Str("Dest", dest).Int("NumRecords", len(file.Records)).Msg("records stored")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
