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
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/cotahist/data"
)

var lineEnding string

var formatCmd = &cobra.Command{
	Use:   "format SRC DEST",
	Short: "Rebuild a COTAHIST file from JSON documents",
	Long: `format reads a directory written by parse and encodes it back into the
fixed-width COTAHIST file DEST.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dest := args[0], args[1]

		file, err := data.ReadJSONDir(src)
		if err != nil {
			return err
		}

		switch lineEnding {
		case "lf":
			file.LineEnding = data.LF
		default:
			file.LineEnding = data.CRLF
		}

		if err := file.Check(); err != nil {
			log.Warn().Err(err).Msg("footer count does not match the number of records")
		}

		fh, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer fh.Close()

		written, err := file.WriteTo(fh)
		if err != nil {
			fh.Close()
			os.Remove(dest)
			return err
		}

		log.Info().Str("FileName", dest).Int64("Bytes", written).Int("NumRecords", len(file.Records)).Msg("wrote cotahist file")
		return fh.Close()
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVar(&lineEnding, "line-ending", "crlf", "line terminator to write (crlf or lf)")
}
