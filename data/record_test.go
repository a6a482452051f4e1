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
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/cotahist/data"
	"github.com/penny-vault/cotahist/fixedwidth"
)

// replaceAt overwrites line starting at offset with value
func replaceAt(line string, offset int, value string) string {
	return line[:offset] + value + line[offset+len(value):]
}

var _ = Describe("Record", func() {
	It("decodes the sample quote", func() {
		record, err := data.ParseRecord(sampleRecord)
		Expect(err).NotTo(HaveOccurred())

		Expect(record.RegType).To(Equal("01"))
		Expect(record.Date).To(Equal("20030212"))
		Expect(record.BDI).To(Equal(data.BDIFractionary))
		Expect(record.Ticker).To(Equal("TBLE3F"))
		Expect(record.ValueType).To(Equal(data.ValueTypeFractionary))
		Expect(record.CompanyShortName).To(Equal("TRACTEBEL"))
		Expect(record.Category).To(Equal([]data.Category{data.CategoryON, data.CategoryALL}))
		Expect(record.TimePeriod).To(Equal(int64(0)))
		Expect(record.Currency).To(Equal("R$"))
		Expect(record.PriceOpening).To(Equal(int64(345)))
		Expect(record.PriceHigh).To(Equal(int64(345)))
		Expect(record.PriceLow).To(Equal(int64(320)))
		Expect(record.PriceAverage).To(Equal(int64(320)))
		Expect(record.PriceClosing).To(Equal(int64(320)))
		Expect(record.PriceBidBest).To(Equal(int64(320)))
		Expect(record.PriceAskBest).To(Equal(int64(338)))
		Expect(record.Deals).To(Equal(int64(7)))
		Expect(record.Transactions).To(Equal(int64(48943)))
		Expect(record.Volume).To(Equal(int64(15660)))
		Expect(record.PriceStrike).To(Equal(int64(0)))
		Expect(record.PriceCorrectionReference).To(Equal(data.PriceCorrectionNull))
		Expect(record.ExpirationDate).To(Equal(int64(data.NoExpiration)))
		Expect(record.Batch).To(Equal(int64(1000)))
		Expect(record.PriceStrikePoints).To(Equal(int64(0)))
		Expect(record.ISIN).To(Equal("BRTBLEACNOR2"))
		Expect(record.Dismes).To(Equal("102"))

		Expect(record.Encode()).To(Equal(sampleRecord))
	})

	It("renders zero strike points as a zero filled field", func() {
		record, err := data.ParseRecord(sampleRecord)
		Expect(err).NotTo(HaveOccurred())

		record.PriceStrikePoints = 0
		record.PriceStrike = -1
		line, err := record.Encode()
		Expect(err).NotTo(HaveOccurred())
		Expect(line[217:230]).To(Equal(strings.Repeat("0", 13)))
		Expect(line[188:201]).To(Equal(strings.Repeat("0", 13)))
		Expect(line[49:52]).To(Equal("   "))
	})

	It("renders a positive time period left aligned", func() {
		record, err := data.ParseRecord(sampleRecord)
		Expect(err).NotTo(HaveOccurred())

		record.TimePeriod = 30
		line, err := record.Encode()
		Expect(err).NotTo(HaveOccurred())
		Expect(line[49:52]).To(Equal("30 "))
		Expect(data.ParseRecord(line)).To(HaveField("TimePeriod", int64(30)))
	})

	It("writes the byte between transactions and volume as zero", func() {
		record, err := data.ParseRecord(replaceAt(sampleRecord, 170, "0"))
		Expect(err).NotTo(HaveOccurred())
		line, err := record.Encode()
		Expect(err).NotTo(HaveOccurred())
		Expect(line[170:171]).To(Equal("0"))
	})

	It("survives an encode/decode cycle", func() {
		record := data.Record{
			RegType:                  "01",
			Date:                     "20030303",
			BDI:                      data.BDIOptionPut,
			Ticker:                   "PETRN52",
			ValueType:                data.ValueTypeOptionPut,
			CompanyShortName:         "PETROBRAS",
			Category:                 []data.Category{data.CategoryPN},
			Currency:                 "R$",
			PriceOpening:             150,
			PriceHigh:                170,
			PriceLow:                 140,
			PriceAverage:             160,
			PriceClosing:             165,
			PriceBidBest:             160,
			PriceAskBest:             170,
			Deals:                    310,
			Transactions:             2200000,
			Volume:                   352000000,
			PriceStrike:              5200,
			PriceCorrectionReference: data.PriceCorrectionUSD,
			ExpirationDate:           20030414,
			Batch:                    1,
			PriceStrikePoints:        5200000000,
			ISIN:                     "BRPETRO0P4Z3",
			Dismes:                   "113",
		}

		line, err := record.Encode()
		Expect(err).NotTo(HaveOccurred())
		Expect(line).To(HaveLen(data.LineWidth))
		Expect(line[188:201]).To(Equal("0000000005200"))
		Expect(data.ParseRecord(line)).To(Equal(record))
	})

	Context("categories", func() {
		It("preserves order", func() {
			categories, err := data.ParseCategories("PN *")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(Equal([]data.Category{data.CategoryPN, data.CategoryALL}))
			Expect(data.JoinCategories(categories)).To(Equal("PN *"))
		})

		It("falls back to legacy codes with embedded blanks", func() {
			line := replaceAt(sampleRecord, 39, "ON *    NM")
			record, err := data.ParseRecord(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Category).To(Equal([]data.Category{data.CategoryONNM}))
			Expect(record.Encode()).To(Equal(line))
		})

		It("decodes a blank field as an empty list", func() {
			categories, err := data.ParseCategories("          ")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(BeEmpty())
		})

		It("reports the unknown part", func() {
			_, err := data.ParseCategories("ON XPTO")
			Expect(errors.Is(err, fixedwidth.ErrUnknownCode)).To(BeTrue())

			var fwErr *fixedwidth.Error
			Expect(errors.As(err, &fwErr)).To(BeTrue())
			Expect(fwErr.Value).To(Equal("XPTO"))
		})
	})

	Context("encoding limits", func() {
		var record data.Record

		BeforeEach(func() {
			var err error
			record, err = data.ParseRecord(sampleRecord)
			Expect(err).NotTo(HaveOccurred())
		})

		expectOverflow := func(field, rendered string) {
			line, err := record.Encode()
			Expect(line).To(BeEmpty())
			Expect(errors.Is(err, fixedwidth.ErrOverflow)).To(BeTrue())

			var fwErr *fixedwidth.Error
			Expect(errors.As(err, &fwErr)).To(BeTrue())
			Expect(fwErr.Field).To(Equal(field))
			Expect(fwErr.Value).To(Equal(rendered))
		}

		It("refuses a ticker longer than twelve bytes", func() {
			record.Ticker = "ABCDEFGHIJKLMNOP"
			expectOverflow(data.FieldTicker, "ABCDEFGHIJKLMNOP")
		})

		It("refuses a four digit time period", func() {
			record.TimePeriod = 1000
			expectOverflow(data.FieldTimePeriod, "1000")
		})

		It("refuses a category list wider than ten bytes", func() {
			record.Category = []data.Category{data.CategoryON, data.CategoryPN, data.CategoryALL, data.CategoryPNA}
			expectOverflow(data.FieldCategory, "ON PN * PNA")
		})

		It("refuses a volume with more than seventeen digits", func() {
			record.Volume = 100_000_000_000_000_000
			expectOverflow(data.FieldVolume, "100000000000000000")
		})

		It("keeps a twelve byte ticker", func() {
			record.Ticker = "ABCDEFGHIJKL"
			line, err := record.Encode()
			Expect(err).NotTo(HaveOccurred())
			Expect(data.ParseRecord(line)).To(HaveField("Ticker", "ABCDEFGHIJKL"))
		})

		DescribeTable("refuses category lists that read back differently",
			func(categories []data.Category, rendered string) {
				record.Category = categories
				line, err := record.Encode()
				Expect(line).To(BeEmpty())
				Expect(errors.Is(err, fixedwidth.ErrAmbiguous)).To(BeTrue())

				var fwErr *fixedwidth.Error
				Expect(errors.As(err, &fwErr)).To(BeTrue())
				Expect(fwErr.Field).To(Equal(data.FieldCategory))
				Expect(fwErr.Value).To(Equal(rendered))
			},
			Entry("legacy ON *", []data.Category{data.CategoryONALL}, "ON *"),
			Entry("legacy PN *", []data.Category{data.CategoryPNALL}, "PN *"),
			Entry("blank bearing code followed by another", []data.Category{data.CategoryBNSBA, data.CategoryON}, "BNS B/A ON"),
		)

		DescribeTable("accepts category lists that read back unchanged",
			func(categories []data.Category) {
				record.Category = categories
				line, err := record.Encode()
				Expect(err).NotTo(HaveOccurred())

				decoded, err := data.ParseRecord(line)
				Expect(err).NotTo(HaveOccurred())
				Expect(decoded.Category).To(HaveLen(len(categories)))
				for idx := range categories {
					Expect(decoded.Category[idx]).To(Equal(categories[idx]))
				}
			},
			Entry("empty", []data.Category{}),
			Entry("nil", nil),
			Entry("split form", []data.Category{data.CategoryON, data.CategoryALL}),
			Entry("legacy with blanks", []data.Category{data.CategoryONNM}),
			Entry("blank bearing code alone", []data.Category{data.CategoryBNSBA}),
		)
	})

	Context("malformed lines", func() {
		It("rejects an unknown market indicator", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 10, "13"))
			Expect(errors.Is(err, fixedwidth.ErrUnknownCode)).To(BeTrue())

			var fwErr *fixedwidth.Error
			Expect(errors.As(err, &fwErr)).To(BeTrue())
			Expect(fwErr.Field).To(Equal(data.FieldBDI))
			Expect(fwErr.Value).To(Equal("13"))
		})

		It("rejects an unknown value type", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 24, "099"))
			Expect(errors.Is(err, fixedwidth.ErrUnknownCode)).To(BeTrue())
		})

		It("rejects an unknown price correction reference", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 201, "5"))
			Expect(errors.Is(err, fixedwidth.ErrUnknownCode)).To(BeTrue())
		})

		It("rejects non-numeric prices", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 56, "00000000003A5"))
			Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())

			var fwErr *fixedwidth.Error
			Expect(errors.As(err, &fwErr)).To(BeTrue())
			Expect(fwErr.Field).To(Equal(data.FieldPriceOpening))
			Expect(fwErr.Value).To(Equal("00000000003A5"))
		})

		It("rejects a blank strict field", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 147, "     "))
			Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())
		})

		It("rejects a non-numeric time period", func() {
			_, err := data.ParseRecord(replaceAt(sampleRecord, 49, "3X "))
			Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())
		})

		It("rejects truncated lines", func() {
			_, err := data.ParseRecord(sampleRecord[:200])
			Expect(errors.Is(err, fixedwidth.ErrLineLength)).To(BeTrue())
		})
	})

	Context("derived values", func() {
		var record data.Record

		BeforeEach(func() {
			var err error
			record, err = data.ParseRecord(sampleRecord)
			Expect(err).NotTo(HaveOccurred())
		})

		It("scales prices by two decimal places", func() {
			scaled := record.Scaled()
			Expect(scaled.Opening.Equal(decimal.RequireFromString("3.45"))).To(BeTrue())
			Expect(scaled.AskBest.Equal(decimal.RequireFromString("3.38"))).To(BeTrue())
			Expect(scaled.Volume.Equal(decimal.RequireFromString("156.60"))).To(BeTrue())
		})

		It("parses the trade date", func() {
			Expect(record.TradeDate()).To(Equal(time.Date(2003, 2, 12, 0, 0, 0, 0, time.UTC)))
		})

		It("treats the far future date as no expiration", func() {
			_, ok, err := record.Expiration()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			record.ExpirationDate = 20030317
			expires, ok, err := record.Expiration()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(expires).To(Equal(time.Date(2003, 3, 17, 0, 0, 0, 0, time.UTC)))
		})
	})
})
