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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	fw "github.com/penny-vault/cotahist/fixedwidth"
)

const (
	HeaderJSON = "header.json"
	FooterJSON = "footer.json"

	recordPrefix = "record-"
	jsonSuffix   = ".json"
)

var ErrRecordSequence = errors.New("record files are not numbered consecutively from 0")

// RecordJSON returns the file name of the record at index idx
func RecordJSON(idx int) string {
	return fmt.Sprintf("%s%d%s", recordPrefix, idx, jsonSuffix)
}

// WriteJSONDir stores file as canonical JSON documents in dest: header.json,
// footer.json and record-N.json for every record, N counting from 0.
func WriteJSONDir(ctx context.Context, dest string, file *File, workers int) error {
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		return fw.NewNotFoundError("Dest", dest)
	}

	if err := writeJSON(filepath.Join(dest, HeaderJSON), file.Header); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(dest, FooterJSON), file.Footer); err != nil {
		return err
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx := range file.Records {
		idx := idx
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return writeJSON(filepath.Join(dest, RecordJSON(idx)), &file.Records[idx])
		})
	}

	return group.Wait()
}

func writeJSON(fn string, v any) error {
	raw, err := CanonicalJSON(v)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(fn), err)
	}
	return os.WriteFile(fn, raw, 0644)
}

// ReadJSONDir loads a directory written by WriteJSONDir
func ReadJSONDir(src string) (*File, error) {
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return nil, fw.NewNotFoundError("Path", src)
	}

	raw, err := os.ReadFile(filepath.Join(src, HeaderJSON))
	if err != nil {
		return nil, err
	}
	header, err := UnmarshalHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", HeaderJSON, err)
	}

	raw, err = os.ReadFile(filepath.Join(src, FooterJSON))
	if err != nil {
		return nil, err
	}
	footer, err := UnmarshalFooter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FooterJSON, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, jsonSuffix) {
			continue
		}

		idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, recordPrefix), jsonSuffix))
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}

	sort.Ints(indices)

	records := make([]Record, len(indices))
	for pos, idx := range indices {
		if idx != pos {
			return nil, fmt.Errorf("%w: missing %s", ErrRecordSequence, RecordJSON(pos))
		}

		raw, err := os.ReadFile(filepath.Join(src, RecordJSON(idx)))
		if err != nil {
			return nil, err
		}

		records[pos], err = UnmarshalRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", RecordJSON(idx), err)
		}
	}

	return &File{
		Header:     header,
		Records:    records,
		Footer:     footer,
		LineEnding: CRLF,
	}, nil
}
