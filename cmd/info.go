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
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/cotahist/library"
	"github.com/penny-vault/cotahist/report"
)

var topTickers int

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [PATH]",
	Short: "Summarize a COTAHIST file or the quote library",
	Long: `With PATH, info decodes the file and prints its header, trading period,
record counts per market and the most traded tickers. Without PATH it
describes the library configured in db.url.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var summary string
		if len(args) == 1 {
			file, err := readFile(ctx, args[0])
			if err != nil {
				return err
			}

			fileSummary, err := report.Summarize(ctx, file, viper.GetInt("parse.workers"), topTickers)
			if err != nil {
				return err
			}
			summary = fileSummary.Markdown()
		} else {
			if viper.GetString("db.url") == "" {
				return errors.New("no file given and db.url is not configured")
			}

			myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
			if err != nil {
				return fmt.Errorf("could not load library info: %w", err)
			}
			defer myLibrary.Close()

			summary, err = myLibrary.Summary(ctx)
			if err != nil {
				return fmt.Errorf("could not create library summary document: %w", err)
			}
		}

		r, err := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return err
		}

		out, err := r.Render(summary)
		if err != nil {
			return fmt.Errorf("could not render summary document: %w", err)
		}

		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&topTickers, "top", 10, "number of most traded tickers to list")
}
