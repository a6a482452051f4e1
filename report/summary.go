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

// Package report summarizes decoded COTAHIST files
package report

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/shopspring/decimal"
	"github.com/xeonx/timeago"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/cotahist/data"
)

const recordsPerTask = 4096

// TickerVolume is the traded volume of one ticker in hundredths of the
// currency unit
type TickerVolume struct {
	Ticker string
	Volume int64
	Quotes int64
}

// Summary describes the content of a file
type Summary struct {
	Header      data.Header
	Footer      data.Footer
	NumRecords  int
	FirstTrade  time.Time
	LastTrade   time.Time
	ByBDI       map[string]int64
	NumTickers  int
	TotalVolume decimal.Decimal
	TopTickers  []TickerVolume
	CountsMatch bool
}

type tickerStats struct {
	volume atomic.Int64
	quotes atomic.Int64
}

// Summarize aggregates the records of file using up to workers goroutines.
// At most top tickers are kept, ordered by traded volume.
func Summarize(ctx context.Context, file *data.File, workers, top int) (*Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tickers := haxmap.New[string, *tickerStats]()
	bdis := haxmap.New[string, *atomic.Int64]()

	var (
		firstTrade atomic.Int64
		lastTrade  atomic.Int64
	)
	firstTrade.Store(int64(^uint64(0) >> 1))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for start := 0; start < len(file.Records); start += recordsPerTask {
		start := start
		end := min(start+recordsPerTask, len(file.Records))

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			for idx := start; idx < end; idx++ {
				record := &file.Records[idx]

				tradeDate, err := record.TradeDate()
				if err != nil {
					return fmt.Errorf("record %d: %w", idx+1, err)
				}
				storeMin(&firstTrade, tradeDate.Unix())
				storeMax(&lastTrade, tradeDate.Unix())

				stats, _ := tickers.GetOrCompute(record.Ticker, func() *tickerStats { return &tickerStats{} })
				stats.volume.Add(record.Volume)
				stats.quotes.Add(1)

				count, _ := bdis.GetOrCompute(record.BDI.String(), func() *atomic.Int64 { return new(atomic.Int64) })
				count.Add(1)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Header:      file.Header,
		Footer:      file.Footer,
		NumRecords:  len(file.Records),
		ByBDI:       make(map[string]int64),
		NumTickers:  int(tickers.Len()),
		CountsMatch: file.Check() == nil,
	}

	if len(file.Records) > 0 {
		summary.FirstTrade = time.Unix(firstTrade.Load(), 0).UTC()
		summary.LastTrade = time.Unix(lastTrade.Load(), 0).UTC()
	}

	bdis.ForEach(func(name string, count *atomic.Int64) bool {
		summary.ByBDI[name] = count.Load()
		return true
	})

	var totalVolume int64
	volumes := make([]TickerVolume, 0, tickers.Len())
	tickers.ForEach(func(ticker string, stats *tickerStats) bool {
		volumes = append(volumes, TickerVolume{Ticker: ticker, Volume: stats.volume.Load(), Quotes: stats.quotes.Load()})
		totalVolume += stats.volume.Load()
		return true
	})

	sort.Slice(volumes, func(i, j int) bool {
		if volumes[i].Volume != volumes[j].Volume {
			return volumes[i].Volume > volumes[j].Volume
		}
		return volumes[i].Ticker < volumes[j].Ticker
	})

	if top >= 0 && len(volumes) > top {
		volumes = volumes[:top]
	}

	summary.TopTickers = volumes
	summary.TotalVolume = decimal.New(totalVolume, -2)

	return summary, nil
}

func storeMin(target *atomic.Int64, val int64) {
	for {
		cur := target.Load()
		if val >= cur || target.CompareAndSwap(cur, val) {
			return
		}
	}
}

func storeMax(target *atomic.Int64, val int64) {
	for {
		cur := target.Load()
		if val <= cur || target.CompareAndSwap(cur, val) {
			return
		}
	}
}

// Markdown renders the summary for display with glamour
func (summary *Summary) Markdown() string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# %s\n\n", summary.Header.FileName))
	builder.WriteString("## Details\n\n")
	builder.WriteString(fmt.Sprintf("  * Source: %s\n", summary.Header.SourceType))

	if issued, err := time.Parse("20060102", summary.Header.IssueDate); err == nil {
		builder.WriteString(fmt.Sprintf("  * Issued: %s (%s)\n", issued.Format("01/02/2006"), timeago.English.Format(issued)))
	} else {
		builder.WriteString(fmt.Sprintf("  * Issued: %s\n", summary.Header.IssueDate))
	}

	builder.WriteString(p.Sprintf("  * Quotes: %d\n", summary.NumRecords))
	builder.WriteString(p.Sprintf("  * Tickers: %d\n", summary.NumTickers))

	if summary.NumRecords > 0 {
		builder.WriteString(fmt.Sprintf("  * Trading Days: %s - %s\n", summary.FirstTrade.Format(time.DateOnly), summary.LastTrade.Format(time.DateOnly)))
	}

	builder.WriteString(p.Sprintf("  * Volume: %s\n", summary.TotalVolume.StringFixed(2)))

	if summary.CountsMatch {
		builder.WriteString(p.Sprintf("  * Footer Count: %d (ok)\n\n", summary.Footer.TotalRecords))
	} else {
		builder.WriteString(p.Sprintf("  * Footer Count: %d (expected %d)\n\n", summary.Footer.TotalRecords, summary.NumRecords+2))
	}

	builder.WriteString("## Markets\n\n")
	names := make([]string, 0, len(summary.ByBDI))
	for name := range summary.ByBDI {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		builder.WriteString(p.Sprintf("  * %s: %d\n", name, summary.ByBDI[name]))
	}

	if len(summary.TopTickers) > 0 {
		builder.WriteString("\n## Most Traded\n\n")
		builder.WriteString("| Ticker | Quotes | Volume |\n|---|---:|---:|\n")
		for _, ticker := range summary.TopTickers {
			builder.WriteString(p.Sprintf("| %s | %d | %s |\n", ticker.Ticker, ticker.Quotes, decimal.New(ticker.Volume, -2).StringFixed(2)))
		}
	}

	return builder.String()
}
