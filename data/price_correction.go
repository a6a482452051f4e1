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
	"strings"
)

// PriceCorrectionReference is the price correction indicator (INDOPC) of
// option and term contracts
type PriceCorrectionReference uint8

const (
	PriceCorrectionNull PriceCorrectionReference = iota
	PriceCorrectionUSD
	PriceCorrectionTJLP
	PriceCorrectionIGPM
	PriceCorrectionURV
)

var priceCorrectionReferenceCodes = newCodeTable[PriceCorrectionReference]("PriceCorrectionReference", []codeEntry{
	{Code: "0", Name: "Null"},
	{Code: "1", Name: "USD"},
	{Code: "2", Name: "TJLP"},
	{Code: "8", Name: "IGPM"},
	{Code: "9", Name: "URV"},
})

// ParsePriceCorrectionReference returns the member whose wire code is code
func ParsePriceCorrectionReference(code string) (PriceCorrectionReference, error) {
	return priceCorrectionReferenceCodes.lookup(code)
}

// PriceCorrectionReferenceFromName returns the member with the given symbolic name
func PriceCorrectionReferenceFromName(name string) (PriceCorrectionReference, error) {
	return priceCorrectionReferenceCodes.fromName(name)
}

// AllPriceCorrectionReferences lists every member in wire-table order
func AllPriceCorrectionReferences() []PriceCorrectionReference {
	return priceCorrectionReferenceCodes.all()
}

// Code returns the wire code
func (ref PriceCorrectionReference) Code() string {
	return priceCorrectionReferenceCodes.code(ref)
}

func (ref PriceCorrectionReference) String() string {
	return priceCorrectionReferenceCodes.name(ref)
}

func (ref PriceCorrectionReference) MarshalText() ([]byte, error) {
	return []byte(ref.String()), nil
}

func (ref *PriceCorrectionReference) UnmarshalText(text []byte) error {
	val, err := priceCorrectionReferenceCodes.fromName(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*ref = val
	return nil
}
