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

// Package export writes decoded COTAHIST quotes as flat tabular files
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/penny-vault/cotahist/data"
)

const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// QuoteRow is a flattened quote with prices as decimal numbers
type QuoteRow struct {
	TradeDate                string  `csv:"trade_date" json:"trade_date" parquet:"name=trade_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Ticker                   string  `csv:"ticker" json:"ticker" parquet:"name=ticker, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ISIN                     string  `csv:"isin" json:"isin" parquet:"name=isin, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CompositeFigi            string  `csv:"composite_figi" json:"composite_figi" parquet:"name=composite_figi, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	BDI                      string  `csv:"bdi" json:"bdi" parquet:"name=bdi, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ValueType                string  `csv:"value_type" json:"value_type" parquet:"name=value_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CompanyShortName         string  `csv:"company_short_name" json:"company_short_name" parquet:"name=company_short_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Category                 string  `csv:"category" json:"category" parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TimePeriod               int64   `csv:"time_period" json:"time_period" parquet:"name=time_period, type=INT64"`
	Currency                 string  `csv:"currency" json:"currency" parquet:"name=currency, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Open                     float64 `csv:"open" json:"open" parquet:"name=open, type=DOUBLE"`
	High                     float64 `csv:"high" json:"high" parquet:"name=high, type=DOUBLE"`
	Low                      float64 `csv:"low" json:"low" parquet:"name=low, type=DOUBLE"`
	Average                  float64 `csv:"average" json:"average" parquet:"name=average, type=DOUBLE"`
	Close                    float64 `csv:"close" json:"close" parquet:"name=close, type=DOUBLE"`
	BidBest                  float64 `csv:"bid_best" json:"bid_best" parquet:"name=bid_best, type=DOUBLE"`
	AskBest                  float64 `csv:"ask_best" json:"ask_best" parquet:"name=ask_best, type=DOUBLE"`
	Deals                    int64   `csv:"deals" json:"deals" parquet:"name=deals, type=INT64"`
	Transactions             int64   `csv:"transactions" json:"transactions" parquet:"name=transactions, type=INT64"`
	Volume                   float64 `csv:"volume" json:"volume" parquet:"name=volume, type=DOUBLE"`
	Strike                   float64 `csv:"strike" json:"strike" parquet:"name=strike, type=DOUBLE"`
	PriceCorrectionReference string  `csv:"price_correction_reference" json:"price_correction_reference" parquet:"name=price_correction_reference, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ExpirationDate           string  `csv:"expiration_date" json:"expiration_date" parquet:"name=expiration_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Batch                    int64   `csv:"batch" json:"batch" parquet:"name=batch, type=INT64"`
	StrikePoints             float64 `csv:"strike_points" json:"strike_points" parquet:"name=strike_points, type=DOUBLE"`
	Dismes                   string  `csv:"dismes" json:"dismes" parquet:"name=dismes, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// Rows flattens the records of file. figis maps ISIN codes to composite
// FIGIs and may be nil.
func Rows(file *data.File, figis map[string]string) ([]*QuoteRow, error) {
	rows := make([]*QuoteRow, 0, len(file.Records))

	for idx := range file.Records {
		record := &file.Records[idx]

		tradeDate, err := record.TradeDate()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		}

		expirationDate := ""
		expires, ok, err := record.Expiration()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		}
		if ok {
			expirationDate = expires.Format(time.DateOnly)
		}

		categories := make([]string, len(record.Category))
		for catIdx, category := range record.Category {
			categories[catIdx] = category.String()
		}

		scaled := record.Scaled()
		rows = append(rows, &QuoteRow{
			TradeDate:                tradeDate.Format(time.DateOnly),
			Ticker:                   record.Ticker,
			ISIN:                     record.ISIN,
			CompositeFigi:            figis[record.ISIN],
			BDI:                      record.BDI.String(),
			ValueType:                record.ValueType.String(),
			CompanyShortName:         record.CompanyShortName,
			Category:                 strings.Join(categories, " "),
			TimePeriod:               record.TimePeriod,
			Currency:                 record.Currency,
			Open:                     scaled.Opening.InexactFloat64(),
			High:                     scaled.High.InexactFloat64(),
			Low:                      scaled.Low.InexactFloat64(),
			Average:                  scaled.Average.InexactFloat64(),
			Close:                    scaled.Closing.InexactFloat64(),
			BidBest:                  scaled.BidBest.InexactFloat64(),
			AskBest:                  scaled.AskBest.InexactFloat64(),
			Deals:                    record.Deals,
			Transactions:             record.Transactions,
			Volume:                   scaled.Volume.InexactFloat64(),
			Strike:                   scaled.Strike.InexactFloat64(),
			PriceCorrectionReference: record.PriceCorrectionReference.String(),
			ExpirationDate:           expirationDate,
			Batch:                    record.Batch,
			StrikePoints:             scaled.StrikePoints.InexactFloat64(),
			Dismes:                   record.Dismes,
		})
	}

	return rows, nil
}

// FileName derives the export file name from the header file name
func FileName(header data.Header, format string) string {
	name := slug.Make(header.FileName)
	if name == "" {
		name = "cotahist"
	}
	return fmt.Sprintf("%s-%s.%s", name, header.IssueDate, format)
}
