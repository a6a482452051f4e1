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

const sampleLine = "01" + "ABC   " + "5  " + "0" + "00042" + "   "

func testLayout() *fixedwidth.Layout {
	return &fixedwidth.Layout{
		Name:  "test",
		Width: 20,
		Fields: []fixedwidth.Field{
			{Name: "code", Start: 0, Width: 2, Kind: fixedwidth.Text, Fill: ' '},
			{Name: "name", Start: 2, Width: 6, Kind: fixedwidth.Text, Fill: ' ', Trim: true},
			{Name: "days", Start: 8, Width: 3, Kind: fixedwidth.LenientInt, Fill: ' ', BlankNonPositive: true},
			{Name: "gap", Start: 11, Width: 1, Kind: fixedwidth.Filler, Fill: '0'},
			{Name: "qty", Start: 12, Width: 5, Kind: fixedwidth.Int, Fill: '0', Dir: fixedwidth.Leading},
			{Name: "filler", Start: 17, Width: 3, Kind: fixedwidth.Filler, Fill: ' '},
		},
	}
}

var _ = Describe("Layout", func() {
	var layout *fixedwidth.Layout

	BeforeEach(func() {
		layout = testLayout()
	})

	Context("validation", func() {
		It("accepts contiguous fields", func() {
			Expect(layout.Validate()).To(Succeed())
		})

		It("rejects a gap between fields", func() {
			layout.Fields[1].Start = 3
			err := layout.Validate()
			Expect(errors.Is(err, fixedwidth.ErrLayout)).To(BeTrue())
		})

		It("rejects fields that do not cover the full width", func() {
			layout.Width = 21
			Expect(errors.Is(layout.Validate(), fixedwidth.ErrLayout)).To(BeTrue())
		})

		It("rejects duplicate names", func() {
			layout.Fields[1].Name = "code"
			Expect(errors.Is(layout.Validate(), fixedwidth.ErrLayout)).To(BeTrue())
		})
	})

	Context("decoding", func() {
		It("slices, trims and converts every field", func() {
			values, err := layout.Decode(sampleLine)
			Expect(err).NotTo(HaveOccurred())
			Expect(values.Text("code")).To(Equal("01"))
			Expect(values.Text("name")).To(Equal("ABC"))
			Expect(values.Int("days")).To(Equal(int64(5)))
			Expect(values.Int("qty")).To(Equal(int64(42)))
		})

		It("treats a blank lenient field as zero", func() {
			values, err := layout.Decode("01" + "ABC   " + "   " + "0" + "00042" + "   ")
			Expect(err).NotTo(HaveOccurred())
			Expect(values.Int("days")).To(Equal(int64(0)))
		})

		It("ignores a trailing line terminator", func() {
			_, err := layout.Decode(sampleLine + "\r\n")
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects short lines", func() {
			_, err := layout.Decode("01ABC")
			Expect(errors.Is(err, fixedwidth.ErrLineLength)).To(BeTrue())
		})

		It("names the field holding malformed numbers", func() {
			_, err := layout.Decode("01" + "ABC   " + "5  " + "0" + "004x2" + "   ")
			Expect(errors.Is(err, fixedwidth.ErrFormat)).To(BeTrue())

			var fwErr *fixedwidth.Error
			Expect(errors.As(err, &fwErr)).To(BeTrue())
			Expect(fwErr.Field).To(Equal("qty"))
			Expect(fwErr.Value).To(Equal("004x2"))
		})
	})

	Context("encoding", func() {
		It("reproduces the decoded line", func() {
			values, err := layout.Decode(sampleLine)
			Expect(err).NotTo(HaveOccurred())
			Expect(layout.Encode(&values)).To(Equal(sampleLine))
		})

		It("renders non-positive blank fields as fill", func() {
			values := fixedwidth.NewValues().
				SetText("code", "02").
				SetText("name", "XY").
				SetInt("days", 0).
				SetInt("qty", 7)
			Expect(layout.Encode(values)).To(Equal("02" + "XY    " + "   " + "0" + "00007" + "   "))
		})

		It("emits fillers regardless of input", func() {
			values := fixedwidth.NewValues().SetText("gap", "X").SetText("filler", "abc")
			line, err := layout.Encode(values)
			Expect(err).NotTo(HaveOccurred())
			Expect(line[11:12]).To(Equal("0"))
			Expect(line[17:]).To(Equal("   "))
		})

		It("accepts the zero value set", func() {
			var values fixedwidth.Values
			values.SetText("code", "03").SetInt("qty", 1)

			line, err := layout.Encode(&values)
			Expect(err).NotTo(HaveOccurred())
			Expect(line).To(HaveLen(20))
			Expect(line[:2]).To(Equal("03"))
		})

		DescribeTable("rejects values wider than their field",
			func(values *fixedwidth.Values, field, rendered string) {
				line, err := layout.Encode(values)
				Expect(line).To(BeEmpty())
				Expect(errors.Is(err, fixedwidth.ErrOverflow)).To(BeTrue())

				var fwErr *fixedwidth.Error
				Expect(errors.As(err, &fwErr)).To(BeTrue())
				Expect(fwErr.Field).To(Equal(field))
				Expect(fwErr.Value).To(Equal(rendered))
				Expect(fixedwidth.ExitCode(err)).To(Equal(1))
			},
			Entry("text", fixedwidth.NewValues().SetText("name", "TOOLONG"), "name", "TOOLONG"),
			Entry("lenient int", fixedwidth.NewValues().SetInt("days", 1000), "days", "1000"),
			Entry("strict int", fixedwidth.NewValues().SetInt("qty", 123456), "qty", "123456"),
			Entry("negative int", fixedwidth.NewValues().SetInt("qty", -123456), "qty", "-123456"),
		)
	})
})
