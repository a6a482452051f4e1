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
	"math"
	"strconv"

	fw "github.com/penny-vault/cotahist/fixedwidth"
	"github.com/rs/zerolog"
)

// Footer is the last line of a COTAHIST file. TotalRecords counts every line
// of the file, header and footer included.
type Footer struct {
	RegType      string `json:"regtype"`
	FileName     string `json:"fname"`
	SourceType   string `json:"source_type"`
	IssueDate    string `json:"date"`
	TotalRecords uint64 `json:"total_records"`
}

// ParseFooter decodes a footer line
func ParseFooter(line string) (Footer, error) {
	values, err := FooterLayout.Decode(line)
	if err != nil {
		return Footer{}, err
	}

	total := values.Int(FieldTotalRecords)
	if total < 0 {
		return Footer{}, fw.NewFormatError(FieldTotalRecords, strconv.FormatInt(total, 10))
	}

	return Footer{
		RegType:      values.Text(FieldRegType),
		FileName:     values.Text(FieldFileName),
		SourceType:   values.Text(FieldSourceType),
		IssueDate:    values.Text(FieldDate),
		TotalRecords: uint64(total),
	}, nil
}

// Encode returns the 245 byte line the footer was decoded from
func (footer *Footer) Encode() (string, error) {
	if footer.TotalRecords > math.MaxInt64 {
		field, _ := FooterLayout.Field(FieldTotalRecords)
		return "", fw.NewOverflowError(FieldTotalRecords, strconv.FormatUint(footer.TotalRecords, 10), field.Width)
	}

	values := fw.NewValues().
		SetText(FieldRegType, footer.RegType).
		SetText(FieldFileName, footer.FileName).
		SetText(FieldSourceType, footer.SourceType).
		SetText(FieldDate, footer.IssueDate).
		SetInt(FieldTotalRecords, int64(footer.TotalRecords))

	return FooterLayout.Encode(values)
}

func (footer *Footer) MarshalZerologObject(e *zerolog.Event) {
	e.Str("FileName", footer.FileName)
	e.Str("IssueDate", footer.IssueDate)
	e.Uint64("TotalRecords", footer.TotalRecords)
}
