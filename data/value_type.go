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

// ValueType is the market type (TPMERC) of a quote
type ValueType uint8

const (
	ValueTypeCash ValueType = iota
	ValueTypeOptionCallExercise
	ValueTypeOptionPutExercise
	ValueTypeAuction
	ValueTypeFractionary
	ValueTypeTerm
	ValueTypeFutureGainRetention
	ValueTypeFutureContinuousRetention
	ValueTypeOptionCall
	ValueTypeOptionPut
)

var valueTypeCodes = newCodeTable[ValueType]("ValueType", []codeEntry{
	{Code: "010", Name: "CASH"},
	{Code: "012", Name: "OPTION_CALL_EXERCISE"},
	{Code: "013", Name: "OPTION_PUT_EXERCISE"},
	{Code: "017", Name: "AUCTION"},
	{Code: "020", Name: "FRACTIONARY"},
	{Code: "030", Name: "TERM"},
	{Code: "050", Name: "FUTURE_GAIN_RETENTION"},
	{Code: "060", Name: "FUTURE_CONTINUOUS_RETENTION"},
	{Code: "070", Name: "OPTION_CALL"},
	{Code: "080", Name: "OPTION_PUT"},
})

// ParseValueType returns the member whose wire code is code
func ParseValueType(code string) (ValueType, error) {
	return valueTypeCodes.lookup(code)
}

// ValueTypeFromName returns the member with the given symbolic name
func ValueTypeFromName(name string) (ValueType, error) {
	return valueTypeCodes.fromName(name)
}

// AllValueTypes lists every member in wire-table order
func AllValueTypes() []ValueType {
	return valueTypeCodes.all()
}

// Code returns the wire code
func (vt ValueType) Code() string {
	return valueTypeCodes.code(vt)
}

func (vt ValueType) String() string {
	return valueTypeCodes.name(vt)
}

func (vt ValueType) MarshalText() ([]byte, error) {
	return []byte(vt.String()), nil
}

func (vt *ValueType) UnmarshalText(text []byte) error {
	val, err := valueTypeCodes.fromName(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*vt = val
	return nil
}
