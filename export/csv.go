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
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes rows with a header line
func WriteCSV(w io.Writer, rows []*QuoteRow) error {
	return gocsv.Marshal(rows, w)
}

// ReadCSV parses a file written by WriteCSV
func ReadCSV(r io.Reader) ([]*QuoteRow, error) {
	var rows []*QuoteRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
