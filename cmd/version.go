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
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/penny-vault/cotahist/pkginfo"
)

var (
	deps        bool
	short       bool
	versionJSON bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cotahist build and its linked modules",
	Long: `version prints the cotahist release, commit and Go toolchain. With --deps
the linked modules are listed under the part of cotahist that uses them
(codec, storage, export, fetch, report, cli, logging); --json emits the same
information as a single JSON document.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := pkginfo.Read()
		if !deps {
			info.Dependencies = nil
		}

		out := cmd.OutOrStdout()

		if versionJSON {
			raw, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(raw))
			return nil
		}

		if short {
			fmt.Fprintln(out, info.Version)
		} else {
			fmt.Fprintln(out, info.String())
		}

		if deps {
			fmt.Fprintf(out, "\n%s", info.DependencyTable())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&deps, "deps", "d", false, "list linked modules grouped by the part of cotahist that uses them")
	versionCmd.Flags().BoolVarP(&short, "short", "s", false, "only print the release")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print build information as JSON")
}
