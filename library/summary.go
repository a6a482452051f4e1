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
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# %s\n", myLibrary.Name))
	builder.WriteString("## Details\n\n")
	builder.WriteString(fmt.Sprintf("Owner: %s\n\n", myLibrary.Owner))

	numImports, err := myLibrary.NumImports(ctx)
	if err != nil {
		return "", err
	}
	builder.WriteString(p.Sprintf("  * Files Imported: %d\n", numImports))

	totalSecurities, err := myLibrary.TotalSecurities(ctx)
	if err != nil {
		return "", err
	}
	builder.WriteString(p.Sprintf("  * Securities Tracked: %d\n", totalSecurities))

	totalRecords, err := myLibrary.TotalRecords(ctx)
	if err != nil {
		return "", err
	}
	builder.WriteString(p.Sprintf("  * Total Quotes: %d\n\n", totalRecords))

	lastUpdated, err := myLibrary.LastUpdated(ctx)
	if err != nil {
		return "", err
	}

	if lastUpdated.Year() <= 1 {
		builder.WriteString("Last Updated: Never\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", timeago.English.Format(lastUpdated),
			lastUpdated.Local().Format("01/02/2006")))
	}

	imports, err := myLibrary.Imports(ctx)
	if err != nil {
		return "", err
	}

	builder.WriteString("## Imports\n\n")
	builder.WriteString(ImportList(p, imports))

	return builder.String(), nil
}

// ImportList renders one markdown bullet per import
func ImportList(p *message.Printer, imports []*Import) string {
	builder := strings.Builder{}

	for _, entry := range imports {
		period := "no quotes"
		if entry.FirstTradeDate != nil && entry.LastTradeDate != nil {
			period = fmt.Sprintf("%s - %s", entry.FirstTradeDate.Format(time.DateOnly), entry.LastTradeDate.Format(time.DateOnly))
		}

		builder.WriteString(p.Sprintf("  * %s %s (%s) %d quotes [%s]\n", entry.FileName, entry.SourceType,
			period, entry.NumRecords, entry.ID.String()[:6]))
	}

	return builder.String()
}
