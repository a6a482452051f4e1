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

	"github.com/penny-vault/cotahist/fixedwidth"
)

type codeEntry struct {
	Code string
	Name string
}

// codeTable is a closed set of wire codes. Members are identified by their
// index in entries so that the exported enum types can be plain integers.
type codeTable[T ~uint8] struct {
	table   string
	entries []codeEntry
	byCode  map[string]T
	byName  map[string]T
}

func newCodeTable[T ~uint8](table string, entries []codeEntry) *codeTable[T] {
	if len(entries) > 255 {
		panic(fmt.Sprintf("%s: too many codes (%d)", table, len(entries)))
	}

	codes := &codeTable[T]{
		table:   table,
		entries: entries,
		byCode:  make(map[string]T, len(entries)),
		byName:  make(map[string]T, len(entries)),
	}

	for idx, entry := range entries {
		if _, ok := codes.byCode[entry.Code]; ok {
			panic(fmt.Sprintf("%s: duplicate code %q", table, entry.Code))
		}
		if _, ok := codes.byName[entry.Name]; ok {
			panic(fmt.Sprintf("%s: duplicate name %q", table, entry.Name))
		}
		codes.byCode[entry.Code] = T(idx)
		codes.byName[entry.Name] = T(idx)
	}

	return codes
}

func (codes *codeTable[T]) lookup(code string) (T, error) {
	if val, ok := codes.byCode[code]; ok {
		return val, nil
	}
	return 0, fixedwidth.NewUnknownCodeError(codes.table, code)
}

func (codes *codeTable[T]) fromName(name string) (T, error) {
	if val, ok := codes.byName[name]; ok {
		return val, nil
	}
	return 0, fixedwidth.NewUnknownCodeError(codes.table, name)
}

func (codes *codeTable[T]) code(val T) string {
	if int(val) >= len(codes.entries) {
		return ""
	}
	return codes.entries[val].Code
}

func (codes *codeTable[T]) name(val T) string {
	if int(val) >= len(codes.entries) {
		return fmt.Sprintf("%s(%d)", codes.table, int(val))
	}
	return codes.entries[val].Name
}

func (codes *codeTable[T]) all() []T {
	members := make([]T, len(codes.entries))
	for idx := range codes.entries {
		members[idx] = T(idx)
	}
	return members
}
