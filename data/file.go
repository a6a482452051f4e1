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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTooFewLines = errors.New("file must contain a header and a footer line")
	ErrRecordCount = errors.New("footer record count does not match file")
)

const (
	LF   = "\n"
	CRLF = "\r\n"
)

// linesPerTask is the number of record lines decoded by one worker task
const linesPerTask = 2048

// File is a fully decoded COTAHIST file
type File struct {
	Header     Header
	Records    []Record
	Footer     Footer
	LineEnding string
}

// ParseFile reads the whole file from r and decodes it. The first line is the
// header, the last non-empty line the footer and everything in between a
// quote record. Records are decoded by up to workers goroutines (NumCPU when
// workers <= 0) and kept in file order. The first malformed line aborts the
// parse.
func ParseFile(ctx context.Context, r io.Reader, workers int) (*File, error) {
	logger := zerolog.Ctx(ctx)

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lineEnding := LF
	if strings.Contains(string(content[:min(len(content), 2*(LineWidth+2))]), CRLF) {
		lineEnding = CRLF
	}

	lines := SplitLines(string(content))
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrTooFewLines, len(lines))
	}

	header, err := ParseHeader(lines[0])
	if err != nil {
		return nil, fmt.Errorf("line 1: %w", err)
	}

	footer, err := ParseFooter(lines[len(lines)-1])
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", len(lines), err)
	}

	body := lines[1 : len(lines)-1]
	records, err := decodeRecords(ctx, body, workers)
	if err != nil {
		return nil, err
	}

	logger.Debug().Object("Header", &header).Int("NumRecords", len(records)).Msg("decoded cotahist file")

	return &File{
		Header:     header,
		Records:    records,
		Footer:     footer,
		LineEnding: lineEnding,
	}, nil
}

func decodeRecords(ctx context.Context, lines []string, workers int) ([]Record, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	records := make([]Record, len(lines))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for start := 0; start < len(lines); start += linesPerTask {
		start := start
		end := min(start+linesPerTask, len(lines))

		group.Go(func() error {
			for idx := start; idx < end; idx++ {
				if err := groupCtx.Err(); err != nil {
					return err
				}

				record, err := ParseRecord(lines[idx])
				if err != nil {
					// line numbers are 1-based and the header is line 1
					return fmt.Errorf("line %d: %w", idx+2, err)
				}
				records[idx] = record
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// SplitLines splits content on LF, strips a trailing CR from every line and
// drops empty lines at the end of the content
func SplitLines(content string) []string {
	lines := strings.Split(content, LF)
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Check compares the footer record count with the number of lines in the
// file, header and footer included
func (file *File) Check() error {
	actual := uint64(len(file.Records) + 2)
	if file.Footer.TotalRecords != actual {
		return fmt.Errorf("%w: footer says %d, file has %d", ErrRecordCount, file.Footer.TotalRecords, actual)
	}
	return nil
}

// WriteTo encodes the file, every line terminated by file.LineEnding
func (file *File) WriteTo(w io.Writer) (int64, error) {
	lineEnding := file.LineEnding
	if lineEnding == "" {
		lineEnding = LF
	}

	buf := bufio.NewWriter(w)
	var written int64

	writeLine := func(line string) error {
		n, err := buf.WriteString(line)
		written += int64(n)
		if err != nil {
			return err
		}
		n, err = buf.WriteString(lineEnding)
		written += int64(n)
		return err
	}

	line, err := file.Header.Encode()
	if err != nil {
		return written, fmt.Errorf("line 1: %w", err)
	}
	if err := writeLine(line); err != nil {
		return written, err
	}

	for idx := range file.Records {
		line, err := file.Records[idx].Encode()
		if err != nil {
			return written, fmt.Errorf("line %d: %w", idx+2, err)
		}
		if err := writeLine(line); err != nil {
			return written, err
		}
	}

	line, err = file.Footer.Encode()
	if err != nil {
		return written, fmt.Errorf("line %d: %w", len(file.Records)+2, err)
	}
	if err := writeLine(line); err != nil {
		return written, err
	}

	return written, buf.Flush()
}
