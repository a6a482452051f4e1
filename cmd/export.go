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
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/cotahist/backblaze"
	"github.com/penny-vault/cotahist/export"
)

var (
	exportFormat string
	exportDir    string
	exportUpload bool
	exportFigi   bool
)

var exportCmd = &cobra.Command{
	Use:   "export PATH...",
	Short: "Export quotes to CSV or Parquet",
	Long: `export flattens the quotes of each COTAHIST file into a CSV or Parquet
file with decimal prices. With --upload the result is copied to the
Backblaze bucket named in backblaze.bucket.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if exportFormat != export.FormatCSV && exportFormat != export.FormatParquet {
			return fmt.Errorf("unknown export format %q", exportFormat)
		}

		uploadCfg := backblaze.ConfigFromViper()
		if exportUpload && !uploadCfg.Enabled() {
			return fmt.Errorf("--upload requires backblaze.application_id, backblaze.application_key and backblaze.bucket")
		}

		for _, path := range args {
			file, err := readFile(ctx, path)
			if err != nil {
				return err
			}

			var figis map[string]string
			if exportFigi {
				if figis, err = lookupFigis(ctx, file, nil); err != nil {
					log.Warn().Err(err).Msg("figi lookup incomplete")
				}
			}

			rows, err := export.Rows(file, figis)
			if err != nil {
				return err
			}

			fn := filepath.Join(exportDir, export.FileName(file.Header, exportFormat))
			if err := writeExport(rows, fn); err != nil {
				return err
			}

			if exportUpload {
				if _, err := backblaze.Upload(uploadCfg, fn, file.Header.FileName); err != nil {
					return err
				}
			}
		}

		return nil
	},
}

func writeExport(rows []*export.QuoteRow, fn string) error {
	if exportFormat == export.FormatParquet {
		return export.WriteParquet(rows, fn)
	}

	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	if err := export.WriteCSV(fh, rows); err != nil {
		return err
	}

	log.Info().Int("NumRecords", len(rows)).Str("FileName", fn).Msg("csv write finished")
	return fh.Close()
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatParquet, "output format (csv or parquet)")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "directory the export is written to")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "upload the export to backblaze")
	exportCmd.Flags().BoolVar(&exportFigi, "figi", false, "add composite FIGIs looked up on OpenFIGI")
}
