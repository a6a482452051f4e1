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
	"bytes"

	"github.com/goccy/go-json"
)

// CanonicalJSON encodes v as compact JSON with object keys sorted
// lexicographically at every level. Integers are kept exact and HTML
// characters are not escaped, so equal values always produce equal bytes.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return nil, err
	}

	var generic any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return nil, err
	}

	// maps are always written with sorted keys
	return json.MarshalWithOption(generic, json.DisableHTMLEscape())
}

// UnmarshalHeader decodes a header from its JSON form
func UnmarshalHeader(raw []byte) (Header, error) {
	var header Header
	err := json.Unmarshal(raw, &header)
	return header, err
}

// UnmarshalFooter decodes a footer from its JSON form
func UnmarshalFooter(raw []byte) (Footer, error) {
	var footer Footer
	err := json.Unmarshal(raw, &footer)
	return footer, err
}

// UnmarshalRecord decodes a quote record from its JSON form
func UnmarshalRecord(raw []byte) (Record, error) {
	var record Record
	err := json.Unmarshal(raw, &record)
	if record.Category == nil {
		record.Category = []Category{}
	}
	return record, err
}
