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
	"errors"
	"fmt"
)

var (
	ErrFormat      = errors.New("malformed numeric field")
	ErrUnknownCode = errors.New("unknown code")
	ErrNotFound    = errors.New("not found")
	ErrLineLength  = errors.New("invalid line length")
	ErrLayout      = errors.New("invalid layout")
	ErrOverflow    = errors.New("value does not fit its field")
	ErrAmbiguous   = errors.New("value does not decode back to itself")
)

// DefaultCode is the exit status carried by errors created in this package
const DefaultCode = 1

// Error is returned by every decode and encode operation. Kind is one of the
// sentinel errors above and can be tested with errors.Is; Field and Value
// locate the offending byte range.
type Error struct {
	Message string
	Code    int
	Field   string
	Value   string
	Kind    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates an error of the given kind with the default exit code
func NewError(kind error, message string) *Error {
	return &Error{
		Message: message,
		Code:    DefaultCode,
		Kind:    kind,
	}
}

// NewFormatError reports a numeric field that contains non-numeric content
func NewFormatError(field, value string) *Error {
	err := NewError(ErrFormat, fmt.Sprintf("Unable to parse integer %q", value))
	if field != "" {
		err.Message = fmt.Sprintf("Unable to parse integer %q in field %s", value, field)
	}
	err.Field = field
	err.Value = value
	return err
}

// NewUnknownCodeError reports a code that is missing from a closed code table
func NewUnknownCodeError(table, code string) *Error {
	err := NewError(ErrUnknownCode, fmt.Sprintf("Unable to find value %q", code))
	err.Field = table
	err.Value = code
	return err
}

// NewOverflowError reports a rendered value wider than its field
func NewOverflowError(field, value string, width int) *Error {
	err := NewError(ErrOverflow, fmt.Sprintf("Value %q does not fit in %d bytes of field %s", value, width, field))
	err.Field = field
	err.Value = value
	return err
}

// NewNotFoundError reports a missing input path or output directory
func NewNotFoundError(label, path string) *Error {
	err := NewError(ErrNotFound, fmt.Sprintf("%s: %q not found", label, path))
	err.Value = path
	return err
}

// NewLineLengthError reports a line that does not match the layout width
func NewLineLengthError(layout string, got, want int) *Error {
	err := NewError(ErrLineLength, fmt.Sprintf("%s line has %d bytes, want %d", layout, got, want))
	err.Field = layout
	err.Value = fmt.Sprintf("%d", got)
	return err
}

// WithField returns a copy of err that names the field it occurred in. Errors
// that are not *Error are returned unchanged.
func WithField(err error, field string) error {
	var fwErr *Error
	if !errors.As(err, &fwErr) {
		return err
	}

	cp := *fwErr
	if cp.Field == "" || cp.Kind == ErrUnknownCode {
		cp.Message = fmt.Sprintf("%s in field %s", cp.Message, field)
	}
	cp.Field = field
	return &cp
}

// ExitCode returns the exit status for err: the carried code for *Error
// values, 1 for any other non-nil error and 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var fwErr *Error
	if errors.As(err, &fwErr) && fwErr.Code != 0 {
		return fwErr.Code
	}

	return DefaultCode
}
