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
	"github.com/rs/zerolog"
)

// Header is the first line of a COTAHIST file
type Header struct {
	RegType    string `json:"regtype"`
	FileName   string `json:"fname"`
	SourceType string `json:"source_type"`
	IssueDate  string `json:"date"`
}

// ParseHeader decodes a header line
func ParseHeader(line string) (Header, error) {
	values, err := HeaderLayout.Decode(line)
	if err != nil {
		return Header{}, err
	}

	return Header{
		RegType:    values.Text(FieldRegType),
		FileName:   values.Text(FieldFileName),
		SourceType: values.Text(FieldSourceType),
		IssueDate:  values.Text(FieldDate),
	}, nil
}

// Encode returns the 245 byte line the header was decoded from
func (header *Header) Encode() (string, error) {
	values := fw.NewValues().
		SetText(FieldRegType, header.RegType).
		SetText(FieldFileName, header.FileName).
		SetText(FieldSourceType, header.SourceType).
		SetText(FieldDate, header.IssueDate)

	return HeaderLayout.Encode(values)
}

func (header *Header) MarshalZerologObject(e *zerolog.Event) {
	e.Str("FileName", header.FileName)
	e.Str("SourceType", header.SourceType)
	e.Str("IssueDate", header.IssueDate)
}
