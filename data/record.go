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
package data

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	fw "github.com/penny-vault/cotahist/fixedwidth"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NoExpiration is the expiration date used by instruments that do not expire
const NoExpiration = 99991231

// Record is a daily quote of one instrument. Prices and the traded volume
// are integers with two implied decimal places.
type Record struct {
	RegType                  string                   `json:"regtype"`
	Date                     string                   `json:"date"`
	BDI                      BDI                      `json:"bdi"`
	Ticker                   string                   `json:"ticker"`
	ValueType                ValueType                `json:"value_type"`
	CompanyShortName         string                   `json:"company_short_name"`
	Category                 []Category               `json:"category"`
	TimePeriod               int64                    `json:"time_period"`
	Currency                 string                   `json:"currency"`
	PriceOpening             int64                    `json:"price_opening"`
	PriceHigh                int64                    `json:"price_high"`
	PriceLow                 int64                    `json:"price_low"`
	PriceAverage             int64                    `json:"price_average"`
	PriceClosing             int64                    `json:"price_closing"`
	PriceBidBest             int64                    `json:"price_bid_best"`
	PriceAskBest             int64                    `json:"price_ask_best"`
	Deals                    int64                    `json:"deals"`
	Transactions             int64                    `json:"transactions"`
	Volume                   int64                    `json:"volume"`
	PriceStrike              int64                    `json:"price_strike"`
	PriceCorrectionReference PriceCorrectionReference `json:"price_correction_reference"`
	ExpirationDate           int64                    `json:"expiration_date"`
	Batch                    int64                    `json:"batch"`
	PriceStrikePoints        int64                    `json:"price_strike_points"`
	ISIN                     string                   `json:"isin_id"`
	Dismes                   string                   `json:"dismes"`
}

// ScaledPrices holds the decimal value of every scaled integer in a record
type ScaledPrices struct {
	Opening      decimal.Decimal
	High         decimal.Decimal
	Low          decimal.Decimal
	Average      decimal.Decimal
	Closing      decimal.Decimal
	BidBest      decimal.Decimal
	AskBest      decimal.Decimal
	Volume       decimal.Decimal
	Strike       decimal.Decimal
	StrikePoints decimal.Decimal
}

// ParseRecord decodes a quote line. Every numeric field except the time
// period must hold digits; every coded field must be a known code.
func ParseRecord(line string) (Record, error) {
	values, err := RecordLayout.Decode(line)
	if err != nil {
		return Record{}, err
	}

	bdi, err := ParseBDI(values.Text(FieldBDI))
	if err != nil {
		return Record{}, fw.WithField(err, FieldBDI)
	}

	valueType, err := ParseValueType(values.Text(FieldValueType))
	if err != nil {
		return Record{}, fw.WithField(err, FieldValueType)
	}

	categories, err := ParseCategories(values.Text(FieldCategory))
	if err != nil {
		return Record{}, fw.WithField(err, FieldCategory)
	}

	priceRef, err := ParsePriceCorrectionReference(values.Text(FieldPriceCorrectionReference))
	if err != nil {
		return Record{}, fw.WithField(err, FieldPriceCorrectionReference)
	}

	return Record{
		RegType:                  values.Text(FieldRegType),
		Date:                     values.Text(FieldDate),
		BDI:                      bdi,
		Ticker:                   values.Text(FieldTicker),
		ValueType:                valueType,
		CompanyShortName:         values.Text(FieldCompanyShortName),
		Category:                 categories,
		TimePeriod:               values.Int(FieldTimePeriod),
		Currency:                 values.Text(FieldCurrency),
		PriceOpening:             values.Int(FieldPriceOpening),
		PriceHigh:                values.Int(FieldPriceHigh),
		PriceLow:                 values.Int(FieldPriceLow),
		PriceAverage:             values.Int(FieldPriceAverage),
		PriceClosing:             values.Int(FieldPriceClosing),
		PriceBidBest:             values.Int(FieldPriceBidBest),
		PriceAskBest:             values.Int(FieldPriceAskBest),
		Deals:                    values.Int(FieldDeals),
		Transactions:             values.Int(FieldTransactions),
		Volume:                   values.Int(FieldVolume),
		PriceStrike:              values.Int(FieldPriceStrike),
		PriceCorrectionReference: priceRef,
		ExpirationDate:           values.Int(FieldExpirationDate),
		Batch:                    values.Int(FieldBatch),
		PriceStrikePoints:        values.Int(FieldPriceStrikePoints),
		ISIN:                     values.Text(FieldISIN),
		Dismes:                   values.Text(FieldDismes),
	}, nil
}

// Encode returns the 245 byte line for the record. Values wider than their
// field and category lists that would not parse back unchanged are errors.
func (record *Record) Encode() (string, error) {
	categories := JoinCategories(record.Category)
	if !categoriesRoundTrip(categories, record.Category) {
		err := fw.NewError(fw.ErrAmbiguous, fmt.Sprintf("Categories %q do not decode back to themselves in field %s", categories, FieldCategory))
		err.Field = FieldCategory
		err.Value = categories
		return "", err
	}

	values := fw.NewValues().
		SetText(FieldRegType, record.RegType).
		SetText(FieldDate, record.Date).
		SetText(FieldBDI, record.BDI.Code()).
		SetText(FieldTicker, record.Ticker).
		SetText(FieldValueType, record.ValueType.Code()).
		SetText(FieldCompanyShortName, record.CompanyShortName).
		SetText(FieldCategory, categories).
		SetInt(FieldTimePeriod, record.TimePeriod).
		SetText(FieldCurrency, record.Currency).
		SetInt(FieldPriceOpening, record.PriceOpening).
		SetInt(FieldPriceHigh, record.PriceHigh).
		SetInt(FieldPriceLow, record.PriceLow).
		SetInt(FieldPriceAverage, record.PriceAverage).
		SetInt(FieldPriceClosing, record.PriceClosing).
		SetInt(FieldPriceBidBest, record.PriceBidBest).
		SetInt(FieldPriceAskBest, record.PriceAskBest).
		SetInt(FieldDeals, record.Deals).
		SetInt(FieldTransactions, record.Transactions).
		SetInt(FieldVolume, record.Volume).
		SetInt(FieldPriceStrike, record.PriceStrike).
		SetText(FieldPriceCorrectionReference, record.PriceCorrectionReference.Code()).
		SetInt(FieldExpirationDate, record.ExpirationDate).
		SetInt(FieldBatch, record.Batch).
		SetInt(FieldPriceStrikePoints, record.PriceStrikePoints).
		SetText(FieldISIN, record.ISIN).
		SetText(FieldDismes, record.Dismes)

	return RecordLayout.Encode(values)
}

// ParseCategories splits a category field on single blanks. Legacy codes
// that contain blanks themselves are only matched when the split form does
// not resolve.
func ParseCategories(field string) ([]Category, error) {
	field = strings.TrimSpace(field)
	categories := make([]Category, 0, 2)
	if field == "" {
		return categories, nil
	}

	var firstErr error
	for _, part := range strings.Split(field, " ") {
		if part == "" {
			continue
		}

		category, err := ParseCategory(part)
		if err != nil {
			firstErr = err
			break
		}

		categories = append(categories, category)
	}

	if firstErr == nil {
		return categories, nil
	}

	if category, err := ParseCategory(field); err == nil {
		return []Category{category}, nil
	}

	return nil, firstErr
}

// JoinCategories renders categories the way ParseCategories reads them
func JoinCategories(categories []Category) string {
	codes := make([]string, len(categories))
	for idx, category := range categories {
		codes[idx] = category.Code()
	}
	return strings.Join(codes, " ")
}

func categoriesRoundTrip(field string, categories []Category) bool {
	parsed, err := ParseCategories(field)
	if err != nil {
		return false
	}
	return slices.Equal(parsed, categories)
}

// Scaled converts the scaled integers of the record to decimals. Strike
// points carry six implied decimal places, everything else two.
func (record *Record) Scaled() ScaledPrices {
	return ScaledPrices{
		Opening:      decimal.New(record.PriceOpening, -2),
		High:         decimal.New(record.PriceHigh, -2),
		Low:          decimal.New(record.PriceLow, -2),
		Average:      decimal.New(record.PriceAverage, -2),
		Closing:      decimal.New(record.PriceClosing, -2),
		BidBest:      decimal.New(record.PriceBidBest, -2),
		AskBest:      decimal.New(record.PriceAskBest, -2),
		Volume:       decimal.New(record.Volume, -2),
		Strike:       decimal.New(record.PriceStrike, -2),
		StrikePoints: decimal.New(record.PriceStrikePoints, -6),
	}
}

// TradeDate parses the YYYYMMDD trade date
func (record *Record) TradeDate() (time.Time, error) {
	return parseDate(FieldDate, record.Date)
}

// Expiration returns the expiration date and false for instruments that do
// not expire
func (record *Record) Expiration() (time.Time, bool, error) {
	if record.ExpirationDate <= 0 || record.ExpirationDate == NoExpiration {
		return time.Time{}, false, nil
	}

	expires, err := parseDate(FieldExpirationDate, fw.Pad(strconv.FormatInt(record.ExpirationDate, 10), 8, '0', fw.Leading))
	if err != nil {
		return time.Time{}, false, err
	}

	return expires, true, nil
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse("20060102", value)
	if err != nil {
		return time.Time{}, fw.NewFormatError(field, value)
	}
	return parsed, nil
}

func (record *Record) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", record.Ticker)
	e.Str("Date", record.Date)
	e.Str("BDI", record.BDI.String())
	e.Str("ISIN", record.ISIN)
}
