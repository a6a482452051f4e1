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
package export

import (
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// WriteParquet saves rows to the local file fn with ZSTD compression
func WriteParquet(rows []*QuoteRow, fn string) error {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, new(QuoteRow), 4)
	if err != nil {
		log.Error().Err(err).Msg("parquet write failed")
		return err
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, row := range rows {
		if err = pw.Write(row); err != nil {
			log.Error().Err(err).Str("TradeDate", row.TradeDate).Str("Ticker", row.Ticker).
				Msg("parquet write failed for record")
			return err
		}
	}

	if err = pw.WriteStop(); err != nil {
		log.Error().Err(err).Msg("parquet write failed")
		return err
	}

	log.Info().Int("NumRecords", len(rows)).Str("FileName", fn).Msg("parquet write finished")
	return nil
}

// ReadParquet loads every row of a file written by WriteParquet
func ReadParquet(fn string) ([]QuoteRow, error) {
	fh, err := local.NewLocalFileReader(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	pr, err := reader.NewParquetReader(fh, new(QuoteRow), 4)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	rows := make([]QuoteRow, pr.GetNumRows())
	if err := pr.Read(&rows); err != nil {
		return nil, err
	}

	return rows, nil
}
