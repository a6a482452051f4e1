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
	fw "github.com/penny-vault/cotahist/fixedwidth"
)

// LineWidth is the width of every COTAHIST line without its terminator
const LineWidth = 245

// Field names double as JSON attribute names
const (
	FieldRegType                  = "regtype"
	FieldFileName                 = "fname"
	FieldSourceType               = "source_type"
	FieldDate                     = "date"
	FieldTotalRecords             = "total_records"
	FieldBDI                      = "bdi"
	FieldTicker                   = "ticker"
	FieldValueType                = "value_type"
	FieldCompanyShortName         = "company_short_name"
	FieldCategory                 = "category"
	FieldTimePeriod               = "time_period"
	FieldCurrency                 = "currency"
	FieldPriceOpening             = "price_opening"
	FieldPriceHigh                = "price_high"
	FieldPriceLow                 = "price_low"
	FieldPriceAverage             = "price_average"
	FieldPriceClosing             = "price_closing"
	FieldPriceBidBest             = "price_bid_best"
	FieldPriceAskBest             = "price_ask_best"
	FieldDeals                    = "deals"
	FieldTransactions             = "transactions"
	FieldVolume                   = "volume"
	FieldPriceStrike              = "price_strike"
	FieldPriceCorrectionReference = "price_correction_reference"
	FieldExpirationDate           = "expiration_date"
	FieldBatch                    = "batch"
	FieldPriceStrikePoints        = "price_strike_points"
	FieldISIN                     = "isin_id"
	FieldDismes                   = "dismes"
)

func text(name string, start, width int) fw.Field {
	return fw.Field{Name: name, Start: start, Width: width, Kind: fw.Text, Fill: ' ', Dir: fw.Trailing}
}

func trimmed(name string, start, width int) fw.Field {
	field := text(name, start, width)
	field.Trim = true
	return field
}

func number(name string, start, width int) fw.Field {
	return fw.Field{Name: name, Start: start, Width: width, Kind: fw.Int, Fill: '0', Dir: fw.Leading}
}

func blank(name string, start, width int, fill byte) fw.Field {
	return fw.Field{Name: name, Start: start, Width: width, Kind: fw.Filler, Fill: fill}
}

// HeaderLayout describes the first line of a COTAHIST file
var HeaderLayout = (&fw.Layout{
	Name:  "header",
	Width: LineWidth,
	Fields: []fw.Field{
		text(FieldRegType, 0, 2),
		text(FieldFileName, 2, 13),
		trimmed(FieldSourceType, 15, 8),
		text(FieldDate, 23, 8),
		blank("reserved", 31, 214, ' '),
	},
}).MustValidate()

// FooterLayout describes the last line of a COTAHIST file
var FooterLayout = (&fw.Layout{
	Name:  "footer",
	Width: LineWidth,
	Fields: []fw.Field{
		text(FieldRegType, 0, 2),
		text(FieldFileName, 2, 13),
		trimmed(FieldSourceType, 15, 8),
		text(FieldDate, 23, 8),
		number(FieldTotalRecords, 31, 11),
		blank("reserved", 42, 203, ' '),
	},
}).MustValidate()

// RecordLayout describes a daily quote line. The byte at offset 170 belongs
// to no field and is always written as '0'.
var RecordLayout = (&fw.Layout{
	Name:  "record",
	Width: LineWidth,
	Fields: []fw.Field{
		text(FieldRegType, 0, 2),
		text(FieldDate, 2, 8),
		trimmed(FieldBDI, 10, 2),
		trimmed(FieldTicker, 12, 12),
		trimmed(FieldValueType, 24, 3),
		trimmed(FieldCompanyShortName, 27, 12),
		trimmed(FieldCategory, 39, 10),
		{Name: FieldTimePeriod, Start: 49, Width: 3, Kind: fw.LenientInt, Fill: ' ', Dir: fw.Trailing, BlankNonPositive: true},
		trimmed(FieldCurrency, 52, 4),
		number(FieldPriceOpening, 56, 13),
		number(FieldPriceHigh, 69, 13),
		number(FieldPriceLow, 82, 13),
		number(FieldPriceAverage, 95, 13),
		number(FieldPriceClosing, 108, 13),
		number(FieldPriceBidBest, 121, 13),
		number(FieldPriceAskBest, 134, 13),
		number(FieldDeals, 147, 5),
		number(FieldTransactions, 152, 18),
		blank("gap", 170, 1, '0'),
		number(FieldVolume, 171, 17),
		{Name: FieldPriceStrike, Start: 188, Width: 13, Kind: fw.Int, Fill: '0', Dir: fw.Leading, BlankNonPositive: true},
		trimmed(FieldPriceCorrectionReference, 201, 1),
		number(FieldExpirationDate, 202, 8),
		number(FieldBatch, 210, 7),
		{Name: FieldPriceStrikePoints, Start: 217, Width: 13, Kind: fw.Int, Fill: '0', Dir: fw.Leading, BlankNonPositive: true},
		text(FieldISIN, 230, 12),
		text(FieldDismes, 242, 3),
	},
}).MustValidate()
