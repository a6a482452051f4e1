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
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/cotahist/fixedwidth"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cotahist",
	Short: "cotahist reads and writes B3 historical quote files",
	Long: `cotahist is a command line utility for working with COTAHIST files, the
fixed-width historical quote archives published by B3 (formerly BOVESPA).

Every file is made of a header line, one line per instrument and trading day
and a footer line. cotahist decodes these files into typed records and can:

	* convert a file to canonical JSON and back
	* validate a file without writing anything
	* summarize a file in the terminal
	* export quotes to CSV or Parquet
	* load quotes into a PostgreSQL database
	* download the yearly, monthly and daily archives from B3`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(fixedwidth.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cotahist.toml)")

	rootCmd.PersistentFlags().String("log-level", "info", "logging level (trace, debug, info, warn, error)")
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for log-level failed")
	}

	rootCmd.PersistentFlags().Int("workers", 0, "number of goroutines used to decode records (default is the number of CPUs)")
	if err := viper.BindPFlag("parse.workers", rootCmd.PersistentFlags().Lookup("workers")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for workers failed")
	}

	rootCmd.PersistentFlags().String("db-url", "", "database connection string")
	if err := viper.BindPFlag("db.url", rootCmd.PersistentFlags().Lookup("db-url")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for db-url failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".cotahist" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".cotahist")
	}

	viper.SetEnvPrefix("cotahist")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("b3.base_url", "https://bvmf.bmfbovespa.com.br/InstDados/SerHist")
	viper.SetDefault("b3.rate_limit", 6)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.Warn().Str("Level", viper.GetString("log.level")).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
