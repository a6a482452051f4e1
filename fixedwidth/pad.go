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
package fixedwidth

import (
	"strconv"
	"strings"
)

type Direction int

const (
	// Trailing appends the fill character, leaving the value left aligned
	Trailing Direction = iota
	// Leading prepends the fill character, leaving the value right aligned
	Leading
)

func (dir Direction) String() string {
	if dir == Leading {
		return "leading"
	}
	return "trailing"
}

// Pad fills value up to width with the fill character. Values that are
// already width bytes or longer are returned unchanged; callers that could
// overflow a field must format the value before padding it.
func Pad(value string, width int, fill byte, dir Direction) string {
	missing := width - len(value)
	if missing <= 0 {
		return value
	}

	filler := strings.Repeat(string(fill), missing)
	if dir == Leading {
		return filler + value
	}

	return value + filler
}

// ParseLenientInt parses a base-10 integer surrounded by optional whitespace.
// Empty and all-blank input is 0.
func ParseLenientInt(raw string) (int64, error) {
	data := strings.TrimSpace(raw)
	if data == "" {
		return 0, nil
	}

	return ParseInt(data)
}

// ParseInt parses a base-10 integer with an optional sign. Unlike
// ParseLenientInt blank input is an error.
func ParseInt(raw string) (int64, error) {
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewFormatError("", raw)
	}

	return val, nil
}

// FormatInt renders val for a field of the given width. Negative values keep
// their sign in the first byte and zero-fill the magnitude so that ParseInt
// reads them back.
func FormatInt(val int64, width int, fill byte) string {
	if val >= 0 || fill != '0' {
		return strconv.FormatInt(val, 10)
	}

	magnitude := strconv.FormatUint(uint64(-(val+1))+1, 10)
	return "-" + Pad(magnitude, width-1, fill, Leading)
}
