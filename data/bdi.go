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

// BDI is the market indicator code (código BDI) of a quote. It classifies the
// trading mechanism or regulatory status of the instrument.
type BDI uint8

const (
	BDIDefault BDI = iota
	BDIB3Regulation
	BDIAgreement
	BDIExtraJudicialRecovery
	BDIJudicialRecovery
	BDIRAET
	BDIRights
	BDIIntervention
	BDIREIT
	BDIDebenture
	BDILiabilities
	BDIBonus
	BDIPolicies
	BDIOptionCallExerciseIndex
	BDIOptionPutExerciseIndex
	BDIOptionCallExercise
	BDIOptionPutExercise
	BDIAuctionUnquoted
	BDIAuctionPrivatization
	BDIAuctionESRecoveryFund
	BDIAuction
	BDIAuctionFinor
	BDIAuctionFinam
	BDIAuctionFiset
	BDIAuctionArrears
	BDIJudicialPermit
	BDIOther
	BDISwapShare
	BDIGoal
	BDITerm
	BDIDebenture3Y
	BDIDebenture3YP
	BDIFutureContractGain
	BDIFuture
	BDIOptionCallIndex
	BDIOptionPutOption
	BDIOptionCall
	BDIOptionPut
	BDIFixedIncome
	BDIFixedIncomeLegacy
	BDITermProspect
	BDIFractionary
	BDISum
)

var bdiCodes = newCodeTable[BDI]("BDI", []codeEntry{
	{Code: "02", Name: "Default"},
	{Code: "05", Name: "B3Regulation"},
	{Code: "06", Name: "Agreement"},
	{Code: "07", Name: "ExtraJudicialRecovery"},
	{Code: "08", Name: "JudicialRecovery"},
	{Code: "09", Name: "RAET"},
	{Code: "10", Name: "Rights"},
	{Code: "11", Name: "Intervention"},
	{Code: "12", Name: "REIT"},
	{Code: "14", Name: "Debenture"},
	{Code: "18", Name: "Liabilities"},
	{Code: "22", Name: "Bonus"},
	{Code: "26", Name: "Policies"},
	{Code: "32", Name: "OptionCallExerciseIndex"},
	{Code: "33", Name: "OptionPutExerciseIndex"},
	{Code: "38", Name: "OptionCallExercise"},
	{Code: "42", Name: "OptionPutExercise"},
	{Code: "46", Name: "AuctionUnquoted"},
	{Code: "48", Name: "AuctionPrivatization"},
	{Code: "49", Name: "AuctionESRecoveryFund"},
	{Code: "50", Name: "Auction"},
	{Code: "51", Name: "AuctionFinor"},
	{Code: "52", Name: "AuctionFinam"},
	{Code: "53", Name: "AuctionFiset"},
	{Code: "54", Name: "AuctionArrears"},
	{Code: "56", Name: "JudicialPermit"},
	{Code: "58", Name: "Other"},
	{Code: "60", Name: "SwapShare"},
	{Code: "61", Name: "Goal"},
	{Code: "62", Name: "Term"},
	{Code: "66", Name: "Debenture3Y"},
	{Code: "68", Name: "Debenture3YP"},
	{Code: "70", Name: "FutureContractGain"},
	{Code: "71", Name: "Future"},
	{Code: "74", Name: "OptionCallIndex"},
	{Code: "75", Name: "OptionPutOption"},
	{Code: "78", Name: "OptionCall"},
	{Code: "82", Name: "OptionPut"},
	{Code: "83", Name: "FixedIncome"},
	{Code: "84", Name: "FixedIncomeLegacy"},
	{Code: "90", Name: "TermProspect"},
	{Code: "96", Name: "Fractionary"},
	{Code: "99", Name: "Sum"},
})

// ParseBDI returns the member whose wire code is code
func ParseBDI(code string) (BDI, error) {
	return bdiCodes.lookup(code)
}

// BDIFromName returns the member with the given symbolic name
func BDIFromName(name string) (BDI, error) {
	return bdiCodes.fromName(name)
}

// AllBDIs lists every member in wire-table order
func AllBDIs() []BDI {
	return bdiCodes.all()
}

// Code returns the wire code
func (bdi BDI) Code() string {
	return bdiCodes.code(bdi)
}

func (bdi BDI) String() string {
	return bdiCodes.name(bdi)
}

func (bdi BDI) MarshalText() ([]byte, error) {
	return []byte(bdi.String()), nil
}

func (bdi *BDI) UnmarshalText(text []byte) error {
	val, err := bdiCodes.fromName(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*bdi = val
	return nil
}
