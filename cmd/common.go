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
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/penny-vault/cotahist/data"
	"github.com/penny-vault/cotahist/figi"
	"github.com/penny-vault/cotahist/fixedwidth"
)

// readFile decodes the COTAHIST file at path
func readFile(ctx context.Context, path string) (*data.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fixedwidth.NewNotFoundError("Path", path)
		}
		return nil, err
	}
	defer fh.Close()

	logger := log.With().Str("FileName", path).Logger()
	ctx = logger.WithContext(ctx)

	startTime := time.Now()
	file, err := data.ParseFile(ctx, fh, viper.GetInt("parse.workers"))
	if err != nil {
		return nil, err
	}

	logger.Info().Int("NumRecords", len(file.Records)).
		Str("RunTime", durafmt.Parse(time.Since(startTime)).LimitFirstN(2).String()).
		Msg("decoded file")

	return file, nil
}

// lookupFigis maps the ISIN codes of file to composite FIGIs. known seeds the
// cache and may be nil.
func lookupFigis(ctx context.Context, file *data.File, known map[string]string) (map[string]string, error) {
	client := figi.New(viper.GetString("openfigi.apikey"))
	client.Seed(known)

	isins := make([]string, 0, len(file.Records))
	for idx := range file.Records {
		isins = append(isins, file.Records[idx].ISIN)
	}

	figis, err := client.Lookup(ctx, isins)
	if err != nil {
		return figis, err
	}

	log.Info().Int("NumISINs", len(figis)).Msg("mapped isins to composite figis")
	return figis, nil
}
