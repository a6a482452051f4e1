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
package fixedwidth_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/cotahist/fixedwidth"
)

var _ = Describe("Pad", func() {
	DescribeTable("fills up to the target width",
		func(value string, width int, fill byte, dir fixedwidth.Direction, expected string) {
			Expect(fixedwidth.Pad(value, width, fill, dir)).To(Equal(expected))
		},
		Entry("trailing blanks", "R$", 4, byte(' '), fixedwidth.Trailing, "R$  "),
		Entry("leading zeros", "345", 13, byte('0'), fixedwidth.Leading, "0000000000345"),
		Entry("empty value", "", 3, byte(' '), fixedwidth.Trailing, "   "),
		Entry("exact width", "BOVESPA", 7, byte(' '), fixedwidth.Trailing, "BOVESPA"),
		Entry("no truncation", "TOOLONGVALUE", 4, byte(' '), fixedwidth.Leading, "TOOLONGVALUE"),
	)
})

var _ = Describe("ParseLenientInt", func() {
	DescribeTable("accepts blanks and signed integers",
		func(raw string, expected int64) {
			val, err := fixedwidth.ParseLenientInt(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal(expected))
		},
		Entry("empty", "", int64(0)),
		Entry("blanks", "   ", int64(0)),
		Entry("leading blank", " 48943", int64(48943)),
		Entry("trailing blank", "30 ", int64(30)),
		Entry("negative", "-12", int64(-12)),
		Entry("plus sign", "+7", int64(7)),
	)

	It("fails with a format error on non-numeric content", func() {
		_, err := fixedwidth.ParseLenientInt("12x")
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())

		var fwErr *fixedwidth.Error
		Expect(errors.As(err, &fwErr)).To(BeTrue())
		Expect(fwErr.Value).To(Equal("12x"))
		Expect(fwErr.Code).To(Equal(1))
	})
})

var _ = Describe("ParseInt", func() {
	It("rejects blanks", func() {
		_, err := fixedwidth.ParseInt("   ")
		Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())
	})

	It("parses zero padded values", func() {
		Expect(fixedwidth.ParseInt("0000000000345")).To(Equal(int64(345)))
	})
})

var _ = Describe("FormatInt", func() {
	It("keeps the sign of negative values in the first byte", func() {
		rendered := fixedwidth.FormatInt(-5, 13, '0')
		Expect(rendered).To(Equal("-000000000005"))
		Expect(fixedwidth.ParseInt(rendered)).To(Equal(int64(-5)))
	})

	It("renders positive values without padding", func() {
		Expect(fixedwidth.FormatInt(553, 11, '0')).To(Equal("553"))
	})
})

var _ = Describe("ExitCode", func() {
	It("maps errors to exit statuses", func() {
		Expect(fixedwidth.ExitCode(nil)).To(Equal(0))
		Expect(fixedwidth.ExitCode(errors.New("boom"))).To(Equal(1))

		err := fixedwidth.NewNotFoundError("Path", "/nope")
		err.Code = 3
		Expect(fixedwidth.ExitCode(err)).To(Equal(3))
		Expect(err.Error()).To(Equal(`Path: "/nope" not found`))
	})
})
