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

// Package fixedwidth decodes and encodes lines made of fields that occupy a
// predetermined byte range. A Layout describes every field of a line type and
// is interpreted by one generic Decode/Encode pair.
package fixedwidth

import (
	"fmt"
	"strings"
)

type Kind int

const (
	// Text fields are kept as strings
	Text Kind = iota
	// Int fields must hold a base-10 integer
	Int
	// LenientInt fields hold a base-10 integer or blanks meaning 0
	LenientInt
	// Filler fields carry no value and are rendered as the fill character
	Filler
)

func (kind Kind) String() string {
	switch kind {
	case Text:
		return "text"
	case Int:
		return "int"
	case LenientInt:
		return "lenient-int"
	case Filler:
		return "filler"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// Field describes the byte range [Start, Start+Width) of a line
type Field struct {
	Name  string
	Start int
	Width int
	Kind  Kind
	Fill  byte
	Dir   Direction

	// Trim removes surrounding whitespace from Text fields on decode
	Trim bool

	// BlankNonPositive renders zero and negative ints as the empty string,
	// which then gets padded to the full width with Fill
	BlankNonPositive bool
}

// End returns the exclusive end offset of the field
func (field Field) End() int {
	return field.Start + field.Width
}

type Layout struct {
	Name   string
	Width  int
	Fields []Field
}

// Validate checks that the fields are ordered, contiguous and cover exactly
// the width of the line
func (layout *Layout) Validate() error {
	offset := 0
	seen := make(map[string]bool, len(layout.Fields))

	for _, field := range layout.Fields {
		if field.Width <= 0 {
			return NewError(ErrLayout, fmt.Sprintf("%s: field %s has width %d", layout.Name, field.Name, field.Width))
		}

		if field.Start != offset {
			return NewError(ErrLayout, fmt.Sprintf("%s: field %s starts at %d, want %d", layout.Name, field.Name, field.Start, offset))
		}

		if field.Kind != Filler {
			if seen[field.Name] {
				return NewError(ErrLayout, fmt.Sprintf("%s: duplicate field %s", layout.Name, field.Name))
			}
			seen[field.Name] = true
		}

		if field.Fill == 0 {
			return NewError(ErrLayout, fmt.Sprintf("%s: field %s has no fill character", layout.Name, field.Name))
		}

		offset = field.End()
	}

	if offset != layout.Width {
		return NewError(ErrLayout, fmt.Sprintf("%s: fields cover %d bytes, want %d", layout.Name, offset, layout.Width))
	}

	return nil
}

// MustValidate panics if the layout is not valid. It is meant for package
// level layout definitions.
func (layout *Layout) MustValidate() *Layout {
	if err := layout.Validate(); err != nil {
		panic(err)
	}
	return layout
}

// Field returns the field with the given name
func (layout *Layout) Field(name string) (Field, bool) {
	for _, field := range layout.Fields {
		if field.Name == name && field.Kind != Filler {
			return field, true
		}
	}
	return Field{}, false
}

// Decode slices line according to the layout. A single trailing line
// terminator is ignored; any other length mismatch is an error.
func (layout *Layout) Decode(line string) (Values, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	if len(line) != layout.Width {
		return Values{}, NewLineLengthError(layout.Name, len(line), layout.Width)
	}

	values := newValues(len(layout.Fields))
	for _, field := range layout.Fields {
		raw := line[field.Start:field.End()]

		switch field.Kind {
		case Filler:
			continue
		case Text:
			if field.Trim {
				raw = strings.TrimSpace(raw)
			}
			values.text[field.Name] = raw
		case Int:
			val, err := ParseInt(raw)
			if err != nil {
				return Values{}, WithField(err, field.Name)
			}
			values.ints[field.Name] = val
		case LenientInt:
			val, err := ParseLenientInt(raw)
			if err != nil {
				return Values{}, WithField(err, field.Name)
			}
			values.ints[field.Name] = val
		}
	}

	return values, nil
}

// Encode renders values in field order. Fields missing from values are
// rendered as their zero value. A value wider than its field is an
// ErrOverflow error naming the field.
func (layout *Layout) Encode(values *Values) (string, error) {
	var builder strings.Builder
	builder.Grow(layout.Width)

	for _, field := range layout.Fields {
		var rendered string

		switch field.Kind {
		case Filler:
			rendered = ""
		case Text:
			rendered = values.Text(field.Name)
		case Int, LenientInt:
			val := values.Int(field.Name)
			if field.BlankNonPositive && val <= 0 {
				rendered = ""
			} else {
				rendered = FormatInt(val, field.Width, field.Fill)
			}
		}

		if len(rendered) > field.Width {
			return "", NewOverflowError(field.Name, rendered, field.Width)
		}

		builder.WriteString(Pad(rendered, field.Width, field.Fill, field.Dir))
	}

	return builder.String(), nil
}

// Values holds the content of a line keyed by field name. The zero value is
// ready to use.
type Values struct {
	text map[string]string
	ints map[string]int64
}

func newValues(size int) Values {
	return Values{
		text: make(map[string]string, size),
		ints: make(map[string]int64, size),
	}
}

// NewValues returns an empty value set ready to be filled for Encode
func NewValues() *Values {
	values := newValues(8)
	return &values
}

func (values *Values) Text(name string) string {
	if values == nil {
		return ""
	}
	return values.text[name]
}

func (values *Values) Int(name string) int64 {
	if values == nil {
		return 0
	}
	return values.ints[name]
}

func (values *Values) SetText(name, val string) *Values {
	if values.text == nil {
		values.text = make(map[string]string)
	}
	values.text[name] = val
	return values
}

func (values *Values) SetInt(name string, val int64) *Values {
	if values.ints == nil {
		values.ints = make(map[string]int64)
	}
	values.ints[name] = val
	return values
}
