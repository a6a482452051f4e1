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
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check PATH...",
	Short: "Validate COTAHIST files",
	Long: `check decodes every line of each file and verifies the record count in
the footer. Nothing is written; the first problem found is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		for _, path := range args {
			file, err := readFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if err := file.Check(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			log.Info().Str("FileName", path).Object("Header", &file.Header).Msg("file is valid")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
