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
package report_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/cotahist/data"
	"github.com/penny-vault/cotahist/report"
)

var _ = Describe("Summarize", func() {
	var file *data.File

	BeforeEach(func() {
		fh, err := os.Open("../data/testdata/COTAHIST_A2003_SAMPLE.TXT")
		Expect(err).NotTo(HaveOccurred())
		defer fh.Close()

		file, err = data.ParseFile(context.Background(), fh, 1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("aggregates quotes", func() {
		summary, err := report.Summarize(context.Background(), file, 4, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(summary.NumRecords).To(Equal(6))
		Expect(summary.NumTickers).To(Equal(6))
		Expect(summary.CountsMatch).To(BeTrue())
		Expect(summary.FirstTrade).To(Equal(time.Date(2003, 1, 2, 0, 0, 0, 0, time.UTC)))
		Expect(summary.LastTrade).To(Equal(time.Date(2003, 3, 3, 0, 0, 0, 0, time.UTC)))
		Expect(summary.TotalVolume.Equal(decimal.RequireFromString("251380396.60"))).To(BeTrue())
		Expect(summary.ByBDI).To(Equal(map[string]int64{
			"Default":     2,
			"OptionCall":  1,
			"Term":        1,
			"Fractionary": 1,
			"OptionPut":   1,
		}))
		Expect(summary.TopTickers).To(Equal([]report.TickerVolume{
			{Ticker: "PETR4", Volume: 24780000000, Quotes: 1},
			{Ticker: "PETRN52", Volume: 352000000, Quotes: 1},
		}))
	})

	It("flags a footer count mismatch", func() {
		file.Footer.TotalRecords = 42
		summary, err := report.Summarize(context.Background(), file, 1, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.CountsMatch).To(BeFalse())
		Expect(summary.TopTickers).To(BeEmpty())
		Expect(summary.Markdown()).To(ContainSubstring("Footer Count: 42 (expected 8)"))
	})

	It("renders markdown", func() {
		summary, err := report.Summarize(context.Background(), file, 0, 10)
		Expect(err).NotTo(HaveOccurred())

		out := summary.Markdown()
		Expect(out).To(HavePrefix("# COTAHIST.2003\n"))
		Expect(out).To(ContainSubstring("  * Source: BOVESPA\n"))
		Expect(out).To(ContainSubstring("  * Issued: 05/31/2004 ("))
		Expect(out).To(ContainSubstring("  * Trading Days: 2003-01-02 - 2003-03-03\n"))
		Expect(out).To(ContainSubstring("  * Volume: 251380396.60\n"))
		Expect(out).To(ContainSubstring("  * Default: 2\n"))
		Expect(out).To(ContainSubstring("| PETR4 | 1 | 247800000.00 |\n"))
	})
})
