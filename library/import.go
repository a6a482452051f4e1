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
package library

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/cotahist/data"
)

// Import describes one COTAHIST file loaded into the library
type Import struct {
	ID             uuid.UUID  `db:"id"`
	FileName       string     `db:"file_name"`
	SourceType     string     `db:"source_type"`
	IssueDate      time.Time  `db:"issue_date"`
	NumRecords     int64      `db:"num_records"`
	FirstTradeDate *time.Time `db:"first_trade_date"`
	LastTradeDate  *time.Time `db:"last_trade_date"`
	ImportedOn     time.Time  `db:"imported_on"`
	ImportedBy     string     `db:"imported_by"`
}

// QuoteColumns lists the cotahist_quotes columns in the order produced by
// QuoteRows
var QuoteColumns = []string{
	"import_id", "trade_date", "bdi", "ticker", "value_type", "company_short_name",
	"category", "time_period", "currency", "price_opening", "price_high", "price_low",
	"price_average", "price_closing", "price_bid_best", "price_ask_best", "deals",
	"transactions", "volume", "price_strike", "price_correction_reference",
	"expiration_date", "batch", "price_strike_points", "isin", "composite_figi", "dismes",
}

// NewImport builds the import entry describing file
func NewImport(fileName string, file *data.File) (*Import, error) {
	issueDate, err := time.Parse("20060102", file.Header.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("header issue date %q: %w", file.Header.IssueDate, err)
	}

	importedBy := "unknown"
	if current, err := user.Current(); err == nil {
		importedBy = current.Username
	}

	entry := &Import{
		ID:         uuid.New(),
		FileName:   fileName,
		SourceType: file.Header.SourceType,
		IssueDate:  issueDate,
		NumRecords: int64(len(file.Records)),
		ImportedOn: time.Now(),
		ImportedBy: importedBy,
	}

	for idx := range file.Records {
		tradeDate, err := file.Records[idx].TradeDate()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		}

		if entry.FirstTradeDate == nil || tradeDate.Before(*entry.FirstTradeDate) {
			entry.FirstTradeDate = &tradeDate
		}
		if entry.LastTradeDate == nil || tradeDate.After(*entry.LastTradeDate) {
			last := tradeDate
			entry.LastTradeDate = &last
		}
	}

	return entry, nil
}

func numeric(val decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: val.Coefficient(), Exp: val.Exponent(), Valid: true}
}

// QuoteRows converts the records of file to rows matching QuoteColumns.
// figis maps ISIN codes to composite FIGIs and may be nil.
func QuoteRows(importID uuid.UUID, file *data.File, figis map[string]string) ([][]any, error) {
	rows := make([][]any, 0, len(file.Records))

	for idx := range file.Records {
		record := &file.Records[idx]

		tradeDate, err := record.TradeDate()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		}

		expiration := pgtype.Date{}
		if expires, ok, err := record.Expiration(); err != nil {
			return nil, fmt.Errorf("record %d: %w", idx+1, err)
		} else if ok {
			expiration = pgtype.Date{Time: expires, Valid: true}
		}

		categories := make([]string, len(record.Category))
		for catIdx, category := range record.Category {
			categories[catIdx] = category.String()
		}

		compositeFigi := pgtype.Text{}
		if figi, ok := figis[record.ISIN]; ok {
			compositeFigi = pgtype.Text{String: figi, Valid: true}
		}

		scaled := record.Scaled()
		rows = append(rows, []any{
			importID,
			tradeDate,
			record.BDI.String(),
			record.Ticker,
			record.ValueType.String(),
			record.CompanyShortName,
			categories,
			int32(record.TimePeriod),
			record.Currency,
			numeric(scaled.Opening),
			numeric(scaled.High),
			numeric(scaled.Low),
			numeric(scaled.Average),
			numeric(scaled.Closing),
			numeric(scaled.BidBest),
			numeric(scaled.AskBest),
			record.Deals,
			record.Transactions,
			numeric(scaled.Volume),
			numeric(scaled.Strike),
			record.PriceCorrectionReference.String(),
			expiration,
			record.Batch,
			numeric(scaled.StrikePoints),
			record.ISIN,
			compositeFigi,
			record.Dismes,
		})
	}

	return rows, nil
}

// SaveFile stores file and its import entry in a single transaction. Quotes
// are streamed with COPY into a staging table and then upserted so that
// loading a file twice replaces the earlier quotes.
func (myLibrary *Library) SaveFile(ctx context.Context, entry *Import, file *data.File, figis map[string]string) error {
	rows, err := QuoteRows(entry.ID, file, figis)
	if err != nil {
		return err
	}

	tx, err := myLibrary.Pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error().Err(err).Msg("error rolling back import transaction")
		}
	}()

	_, err = tx.Exec(ctx, `INSERT INTO cotahist_imports (id, file_name, source_type, issue_date,
	num_records, first_trade_date, last_trade_date, imported_on, imported_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.FileName, entry.SourceType, entry.IssueDate, entry.NumRecords,
		entry.FirstTradeDate, entry.LastTradeDate, entry.ImportedOn, entry.ImportedBy)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `CREATE TEMP TABLE cotahist_staging (LIKE cotahist_quotes) ON COMMIT DROP`); err != nil {
		return err
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"cotahist_staging"}, QuoteColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `INSERT INTO cotahist_quotes SELECT * FROM cotahist_staging
	ON CONFLICT ON CONSTRAINT cotahist_quotes_pkey DO UPDATE SET
		import_id = EXCLUDED.import_id,
		value_type = EXCLUDED.value_type,
		company_short_name = EXCLUDED.company_short_name,
		category = EXCLUDED.category,
		time_period = EXCLUDED.time_period,
		currency = EXCLUDED.currency,
		price_opening = EXCLUDED.price_opening,
		price_high = EXCLUDED.price_high,
		price_low = EXCLUDED.price_low,
		price_average = EXCLUDED.price_average,
		price_closing = EXCLUDED.price_closing,
		price_bid_best = EXCLUDED.price_bid_best,
		price_ask_best = EXCLUDED.price_ask_best,
		deals = EXCLUDED.deals,
		transactions = EXCLUDED.transactions,
		volume = EXCLUDED.volume,
		price_strike = EXCLUDED.price_strike,
		price_correction_reference = EXCLUDED.price_correction_reference,
		expiration_date = EXCLUDED.expiration_date,
		batch = EXCLUDED.batch,
		price_strike_points = EXCLUDED.price_strike_points,
		isin = EXCLUDED.isin,
		composite_figi = coalesce(EXCLUDED.composite_figi, cotahist_quotes.composite_figi)`)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Info().Str("ImportID", entry.ID.String()).Int64("NumCopied", copied).
		Int64("NumSaved", tag.RowsAffected()).Msg("saved quotes to library")

	return nil
}

// Imports returns every import entry, most recent first
func (myLibrary *Library) Imports(ctx context.Context) ([]*Import, error) {
	var imports []*Import
	err := pgxscan.Select(ctx, myLibrary.Pool, &imports,
		`SELECT id, file_name, source_type, issue_date, num_records, first_trade_date,
last_trade_date, imported_on, imported_by FROM cotahist_imports ORDER BY imported_on DESC`)
	return imports, err
}

// CompositeFigis returns the ISIN to composite FIGI mapping already known
// to the library
func (myLibrary *Library) CompositeFigis(ctx context.Context) (map[string]string, error) {
	type isinFigi struct {
		ISIN          string `db:"isin"`
		CompositeFigi string `db:"composite_figi"`
	}

	var known []*isinFigi
	if err := pgxscan.Select(ctx, myLibrary.Pool, &known,
		`SELECT DISTINCT isin, composite_figi FROM cotahist_quotes WHERE composite_figi IS NOT NULL`); err != nil {
		return nil, err
	}

	figis := make(map[string]string, len(known))
	for _, elem := range known {
		figis[elem.ISIN] = elem.CompositeFigi
	}

	return figis, nil
}
