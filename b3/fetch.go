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

// Package b3 downloads historical quote files published by B3
package b3

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://bvmf.bmfbovespa.com.br/InstDados/SerHist"

var (
	ErrNoQuoteFile = errors.New("archive does not contain a quote file")
	ErrPeriod      = errors.New("invalid period")
)

// Period selects one of the published archives: a full year, a month or a
// single trading day
type Period struct {
	Year  int
	Month int
	Day   int
}

// ParsePeriod accepts YYYY, YYYY-MM and YYYY-MM-DD
func ParsePeriod(val string) (Period, error) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		parsed, err := time.Parse(layout, val)
		if err != nil {
			continue
		}

		period := Period{Year: parsed.Year()}
		if len(layout) >= 7 {
			period.Month = int(parsed.Month())
		}
		if len(layout) == 10 {
			period.Day = parsed.Day()
		}
		return period, nil
	}

	return Period{}, fmt.Errorf("%w: %q", ErrPeriod, val)
}

// ArchiveName returns the name B3 publishes the period under
func (period Period) ArchiveName() string {
	switch {
	case period.Day != 0:
		return fmt.Sprintf("COTAHIST_D%02d%02d%04d.ZIP", period.Day, period.Month, period.Year)
	case period.Month != 0:
		return fmt.Sprintf("COTAHIST_M%02d%04d.ZIP", period.Month, period.Year)
	default:
		return fmt.Sprintf("COTAHIST_A%04d.ZIP", period.Year)
	}
}

func (period Period) String() string {
	switch {
	case period.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", period.Year, period.Month, period.Day)
	case period.Month != 0:
		return fmt.Sprintf("%04d-%02d", period.Year, period.Month)
	default:
		return fmt.Sprintf("%04d", period.Year)
	}
}

// Client downloads archives with a bounded request rate
type Client struct {
	baseURL string
	http    *resty.Client
	limiter *rate.Limiter
}

// New creates a client. requestsPerMinute <= 0 disables rate limiting.
func New(baseURL string, requestsPerMinute int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: resty.New().
			SetTimeout(5*time.Minute).
			SetRetryCount(3).
			SetRetryWaitTime(2*time.Second).
			SetHeader("User-Agent", "cotahist"),
		limiter: limiter,
	}
}

// Archive fetches the zip archive of period
func (client *Client) Archive(ctx context.Context, period Period) ([]byte, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", client.baseURL, period.ArchiveName())
	log.Info().Str("URL", url).Msg("downloading quote archive")

	resp, err := client.http.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Error().Err(err).Str("URL", url).Msg("download failed")
		return nil, err
	}

	if resp.StatusCode() >= 400 {
		log.Error().Int("StatusCode", resp.StatusCode()).Str("URL", url).Msg("b3 returned invalid status code")
		return nil, fmt.Errorf("%s: status %d", period.ArchiveName(), resp.StatusCode())
	}

	return resp.Body(), nil
}

// Extract returns the name and content of the quote file inside archive
func Extract(archive []byte) (string, []byte, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", nil, err
	}

	for _, entry := range zipReader.File {
		if entry.FileInfo().IsDir() || !strings.HasPrefix(strings.ToUpper(filepath.Base(entry.Name)), "COTAHIST") {
			continue
		}

		fh, err := entry.Open()
		if err != nil {
			return "", nil, err
		}

		content, err := io.ReadAll(fh)
		fh.Close()
		if err != nil {
			return "", nil, err
		}

		return filepath.Base(entry.Name), content, nil
	}

	return "", nil, ErrNoQuoteFile
}

// Download fetches period and writes the extracted quote file to destDir.
// It returns the path of the written file.
func (client *Client) Download(ctx context.Context, period Period, destDir string) (string, error) {
	archive, err := client.Archive(ctx, period)
	if err != nil {
		return "", err
	}

	name, content, err := Extract(archive)
	if err != nil {
		return "", fmt.Errorf("%s: %w", period.ArchiveName(), err)
	}

	fn := filepath.Join(destDir, name)
	if err := os.WriteFile(fn, content, 0644); err != nil {
		return "", err
	}

	log.Info().Str("FileName", fn).Int("Size", len(content)).Msg("saved quote file")
	return fn, nil
}
