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

// Category is a share class code (ESPECI). A record lists one
// or more categories separated by single spaces.
type Category uint8

const (
	CategoryBDR Category = iota
	CategoryBNS
	CategoryBNSBA
	CategoryBNSORD
	CategoryBNSPA
	CategoryBNSPB
	CategoryBNSPC
	CategoryBNSPD
	CategoryBNSPE
	CategoryBNSPF
	CategoryBNSPG
	CategoryBNSPH
	CategoryBNSPRE
	CategoryCDA
	CategoryCI
	CategoryCPA
	CategoryCIATZ
	CategoryCIEA
	CategoryCIEBA
	CategoryCIED
	CategoryCIER
	CategoryCIERA
	CategoryCIERB
	CategoryCIERS
	CategoryCIES
	CategoryDIR
	CategoryDIRDEB
	CategoryDIRORD
	CategoryDIRPA
	CategoryDIRPB
	CategoryDIRPC
	CategoryDIRPD
	CategoryDIRPE
	CategoryDIRPF
	CategoryDIRPG
	CategoryDIRPR
	CategoryDIRPRA
	CategoryDIRPRB
	CategoryDIRPRC
	CategoryDIRPRE
	CategoryFIDC
	CategoryLFT
	CategoryM1REC
	CategoryON
	CategoryONATZ
	CategoryONEB
	CategoryONED
	CategoryONEDB
	CategoryONEDJ
	CategoryONEDR
	CategoryONEG
	CategoryONEJ
	CategoryONEJB
	CategoryONEJS
	CategoryONER
	CategoryONERJ
	CategoryONES
	CategoryONP
	CategoryONREC
	CategoryONALL
	CategoryOR
	CategoryORP
	CategoryPCD
	CategoryPN
	CategoryPNEB
	CategoryPNED
	CategoryPNEDB
	CategoryPNEDJ
	CategoryPNEDR
	CategoryPNEJ
	CategoryPNEJB
	CategoryPNEJS
	CategoryPNES
	CategoryPNP
	CategoryPNREC
	CategoryPNA
	CategoryPNAEB
	CategoryPNAEDR
	CategoryPNAEJ
	CategoryPNAES
	CategoryPNAP
	CategoryPNAREC
	CategoryPNB
	CategoryPNBEB
	CategoryPNBEDR
	CategoryPNBEJ
	CategoryPNBES
	CategoryPNBP
	CategoryPNBREC
	CategoryPNC
	CategoryPNCEB
	CategoryPNCEDR
	CategoryPNCEJ
	CategoryPNCES
	CategoryPNCP
	CategoryPNCREC
	CategoryPND
	CategoryPNDEB
	CategoryPNDEDR
	CategoryPNDEJ
	CategoryPNDES
	CategoryPNDP
	CategoryPNDREC
	CategoryPNE
	CategoryPNEED
	CategoryPNEP
	CategoryPNEREC

	// legacy codes found in historical files but missing from the layout
	// documentation; the embedded blanks are part of the code
	CategoryALL
	CategoryPNALL
	CategoryPNN1
	CategoryONI02
	CategoryONNM
	CategoryONN1
	CategoryPNN2
	CategoryPNAALL
	CategoryPNALLN1
	CategoryONALLN1
	CategoryPNBALL
	CategoryDIRPREN1
)

var categoryCodes = newCodeTable[Category]("Category", []codeEntry{
	{Code: "BDR", Name: "BDR"},
	{Code: "BNS", Name: "BNS"},
	{Code: "BNS B/A", Name: "BNSBA"},
	{Code: "BNS ORD", Name: "BNSORD"},
	{Code: "BNS P/A", Name: "BNSPA"},
	{Code: "BNS P/B", Name: "BNSPB"},
	{Code: "BNS P/C", Name: "BNSPC"},
	{Code: "BNS P/D", Name: "BNSPD"},
	{Code: "BNS P/E", Name: "BNSPE"},
	{Code: "BNS P/F", Name: "BNSPF"},
	{Code: "BNS P/G", Name: "BNSPG"},
	{Code: "BNS P/H", Name: "BNSPH"},
	{Code: "BNS PRE", Name: "BNSPRE"},
	{Code: "CDA", Name: "CDA"},
	{Code: "CI", Name: "CI"},
	{Code: "CPA", Name: "CPA"},
	{Code: "CI ATZ", Name: "CIATZ"},
	{Code: "CI EA", Name: "CIEA"},
	{Code: "CI EBA", Name: "CIEBA"},
	{Code: "CI ED", Name: "CIED"},
	{Code: "CI ER", Name: "CIER"},
	{Code: "CI ERA", Name: "CIERA"},
	{Code: "CI ERB", Name: "CIERB"},
	{Code: "CI ERS", Name: "CIERS"},
	{Code: "CI ES", Name: "CIES"},
	{Code: "DIR", Name: "DIR"},
	{Code: "DIR DEB", Name: "DIRDEB"},
	{Code: "DIR ORD", Name: "DIRORD"},
	{Code: "DIR P/A", Name: "DIRPA"},
	{Code: "DIR P/B", Name: "DIRPB"},
	{Code: "DIR P/C", Name: "DIRPC"},
	{Code: "DIR P/D", Name: "DIRPD"},
	{Code: "DIR P/E", Name: "DIRPE"},
	{Code: "DIR P/F", Name: "DIRPF"},
	{Code: "DIR P/G", Name: "DIRPG"},
	{Code: "DIR P/R", Name: "DIRPR"},
	{Code: "DIR PRA", Name: "DIRPRA"},
	{Code: "DIR PRB", Name: "DIRPRB"},
	{Code: "DIR PRC", Name: "DIRPRC"},
	{Code: "DIR PRE", Name: "DIRPRE"},
	{Code: "FIDC", Name: "FIDC"},
	{Code: "LFT", Name: "LFT"},
	{Code: "M1 REC", Name: "M1REC"},
	{Code: "ON", Name: "ON"},
	{Code: "ON ATZ", Name: "ONATZ"},
	{Code: "ON EB", Name: "ONEB"},
	{Code: "ON ED", Name: "ONED"},
	{Code: "ON EDB", Name: "ONEDB"},
	{Code: "ON EDJ", Name: "ONEDJ"},
	{Code: "ON EDR", Name: "ONEDR"},
	{Code: "ON EG", Name: "ONEG"},
	{Code: "ON EJ", Name: "ONEJ"},
	{Code: "ON EJB", Name: "ONEJB"},
	{Code: "ON EJS", Name: "ONEJS"},
	{Code: "ON ER", Name: "ONER"},
	{Code: "ON ERJ", Name: "ONERJ"},
	{Code: "ON ES", Name: "ONES"},
	{Code: "ON P", Name: "ONP"},
	{Code: "ON REC", Name: "ONREC"},
	{Code: "ON *", Name: "ONALL"},
	{Code: "OR", Name: "OR"},
	{Code: "OR P", Name: "ORP"},
	{Code: "PCD", Name: "PCD"},
	{Code: "PN", Name: "PN"},
	{Code: "PN EB", Name: "PNEB"},
	{Code: "PN ED", Name: "PNED"},
	{Code: "PN EDB", Name: "PNEDB"},
	{Code: "PN EDJ", Name: "PNEDJ"},
	{Code: "PN EDR", Name: "PNEDR"},
	{Code: "PN EJ", Name: "PNEJ"},
	{Code: "PN EJB", Name: "PNEJB"},
	{Code: "PN EJS", Name: "PNEJS"},
	{Code: "PN ES", Name: "PNES"},
	{Code: "PN P", Name: "PNP"},
	{Code: "PN REC", Name: "PNREC"},
	{Code: "PNA", Name: "PNA"},
	{Code: "PN AEB", Name: "PNAEB"},
	{Code: "PN AEDR", Name: "PNAEDR"},
	{Code: "PN AEJ", Name: "PNAEJ"},
	{Code: "PN AES", Name: "PNAES"},
	{Code: "PN AP", Name: "PNAP"},
	{Code: "PNA REC", Name: "PNAREC"},
	{Code: "PNB", Name: "PNB"},
	{Code: "PNB EB", Name: "PNBEB"},
	{Code: "PNB EDR", Name: "PNBEDR"},
	{Code: "PNB EJ", Name: "PNBEJ"},
	{Code: "PNB ES", Name: "PNBES"},
	{Code: "PNB P", Name: "PNBP"},
	{Code: "PNB REC", Name: "PNBREC"},
	{Code: "PNC", Name: "PNC"},
	{Code: "PNC EB", Name: "PNCEB"},
	{Code: "PNC EDR", Name: "PNCEDR"},
	{Code: "PNC EJ", Name: "PNCEJ"},
	{Code: "PNC ES", Name: "PNCES"},
	{Code: "PNC P", Name: "PNCP"},
	{Code: "PNC REC", Name: "PNCREC"},
	{Code: "PND", Name: "PND"},
	{Code: "PND EB", Name: "PNDEB"},
	{Code: "PND EDR", Name: "PNDEDR"},
	{Code: "PND EJ", Name: "PNDEJ"},
	{Code: "PND ES", Name: "PNDES"},
	{Code: "PND P", Name: "PNDP"},
	{Code: "PND REC", Name: "PNDREC"},
	{Code: "PNE", Name: "PNE"},
	{Code: "PNE ED", Name: "PNEED"},
	{Code: "PNE P", Name: "PNEP"},
	{Code: "PNE REC", Name: "PNEREC"},
	{Code: "*", Name: "ALL"},
	{Code: "PN *", Name: "PNALL"},
	{Code: "PN      N1", Name: "PNN1"},
	{Code: "ON *I02", Name: "ONI02"},
	{Code: "ON *    NM", Name: "ONNM"},
	{Code: "ON      N1", Name: "ONN1"},
	{Code: "PN      N2", Name: "PNN2"},
	{Code: "PNA*", Name: "PNAALL"},
	{Code: "PN *    N1", Name: "PNALLN1"},
	{Code: "ON *    N1", Name: "ONALLN1"},
	{Code: "PNB*", Name: "PNBALL"},
	{Code: "DIR*PRE N1", Name: "DIRPREN1"},
})

// ParseCategory returns the member whose wire code is code
func ParseCategory(code string) (Category, error) {
	return categoryCodes.lookup(code)
}

// CategoryFromName returns the member with the given symbolic name
func CategoryFromName(name string) (Category, error) {
	return categoryCodes.fromName(name)
}

// AllCategories lists every member in wire-table order
func AllCategories() []Category {
	return categoryCodes.all()
}

// Code returns the wire code
func (cat Category) Code() string {
	return categoryCodes.code(cat)
}

func (cat Category) String() string {
	return categoryCodes.name(cat)
}

func (cat Category) MarshalText() ([]byte, error) {
	return []byte(cat.String()), nil
}

func (cat *Category) UnmarshalText(text []byte) error {
	val, err := categoryCodes.fromName(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*cat = val
	return nil
}
