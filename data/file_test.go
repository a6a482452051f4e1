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
package data_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/cotahist/data"
	"github.com/penny-vault/cotahist/fixedwidth"
)

var _ = Describe("File", func() {
	var content []byte

	BeforeEach(func() {
		var err error
		content, err = os.ReadFile(sampleFile)
		Expect(err).NotTo(HaveOccurred())
	})

	It("decodes every line in order", func() {
		file, err := data.ParseFile(context.Background(), bytes.NewReader(content), 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(file.LineEnding).To(Equal(data.CRLF))
		Expect(file.Header.FileName).To(Equal("COTAHIST.2003"))
		Expect(file.Footer.TotalRecords).To(Equal(uint64(8)))
		Expect(file.Records).To(HaveLen(6))

		tickers := make([]string, len(file.Records))
		for idx, record := range file.Records {
			tickers[idx] = record.Ticker
		}
		Expect(tickers).To(Equal([]string{"PETR4", "TNLPB44", "VALE5T", "ITSA4", "TBLE3F", "PETRN52"}))

		Expect(file.Records[3].Category).To(Equal([]data.Category{data.CategoryPNN1}))
		Expect(file.Records[2].TimePeriod).To(Equal(int64(30)))
		Expect(file.Records[5].PriceCorrectionReference).To(Equal(data.PriceCorrectionUSD))
		Expect(file.Records[4].Encode()).To(Equal(sampleRecord))
	})

	It("writes back the exact bytes it read", func() {
		file, err := data.ParseFile(context.Background(), bytes.NewReader(content), 0)
		Expect(err).NotTo(HaveOccurred())

		var out bytes.Buffer
		written, err := file.WriteTo(&out)
		Expect(err).NotTo(HaveOccurred())
		Expect(written).To(Equal(int64(len(content))))
		Expect(out.Bytes()).To(Equal(content))
	})

	It("accepts LF terminated files", func() {
		unix := strings.ReplaceAll(string(content), "\r\n", "\n")
		file, err := data.ParseFile(context.Background(), strings.NewReader(unix), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(file.LineEnding).To(Equal(data.LF))

		var out bytes.Buffer
		_, err = file.WriteTo(&out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal(unix))
	})

	It("stops writing at a record that does not fit the layout", func() {
		file, err := data.ParseFile(context.Background(), bytes.NewReader(content), 1)
		Expect(err).NotTo(HaveOccurred())

		file.Records[2].Ticker = "VALE5T.SA.EXTRA"

		var out bytes.Buffer
		_, err = file.WriteTo(&out)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("line 4: "))
		Expect(errors.Is(err, fixedwidth.ErrOverflow)).To(BeTrue())

		var fwErr *fixedwidth.Error
		Expect(errors.As(err, &fwErr)).To(BeTrue())
		Expect(fwErr.Field).To(Equal(data.FieldTicker))
	})

	It("names the footer line when the count does not fit", func() {
		file, err := data.ParseFile(context.Background(), bytes.NewReader(content), 1)
		Expect(err).NotTo(HaveOccurred())

		file.Footer.TotalRecords = 1 << 63

		var out bytes.Buffer
		_, err = file.WriteTo(&out)
		Expect(err.Error()).To(HavePrefix("line 8: "))
		Expect(errors.Is(err, fixedwidth.ErrOverflow)).To(BeTrue())
	})

	It("verifies the footer count", func() {
		file, err := data.ParseFile(context.Background(), bytes.NewReader(content), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(file.Check()).To(Succeed())

		file.Records = file.Records[:5]
		Expect(errors.Is(file.Check(), data.ErrRecordCount)).To(BeTrue())
	})

	It("requires a header and a footer", func() {
		_, err := data.ParseFile(context.Background(), strings.NewReader(padLine(sampleHeader)+"\n"), 1)
		Expect(errors.Is(err, data.ErrTooFewLines)).To(BeTrue())
	})

	It("reports the line number of a malformed record", func() {
		lines := strings.Split(string(content), "\r\n")
		lines[3] = lines[3][:100]

		_, err := data.ParseFile(context.Background(), strings.NewReader(strings.Join(lines, "\r\n")), 4)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("line 4: "))
		Expect(errors.Is(err, fixedwidth.ErrLineLength)).To(BeTrue())
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := data.ParseFile(ctx, bytes.NewReader(content), 1)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})

var _ = Describe("SplitLines", func() {
	It("drops trailing blank lines and carriage returns", func() {
		Expect(data.SplitLines("a\r\nb\r\n\r\n")).To(Equal([]string{"a", "b"}))
		Expect(data.SplitLines("")).To(BeEmpty())
	})
})
