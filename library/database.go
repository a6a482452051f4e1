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
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Library is a PostgreSQL database holding imported COTAHIST quotes
type Library struct {
	DBUrl string
	Name  string
	Owner string

	Pool *pgxpool.Pool
}

// Connect to the database configured for the library
func (myLibrary *Library) Connect(ctx context.Context) error {
	if myLibrary.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myLibrary.DBUrl)
	if err != nil {
		return err
	}
	myLibrary.Pool = pool

	return nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	if myLibrary.Pool != nil {
		myLibrary.Pool.Close()
	}
}

// NewFromDB creates a new library object with values from the database
func NewFromDB(ctx context.Context, dbURL string) (*Library, error) {
	myLibrary := &Library{
		DBUrl: dbURL,
	}

	if err := myLibrary.Connect(ctx); err != nil {
		return nil, err
	}

	if err := myLibrary.Pool.QueryRow(ctx, "SELECT name, owner FROM library LIMIT 1").Scan(&myLibrary.Name, &myLibrary.Owner); err != nil {
		myLibrary.Close()
		return nil, err
	}

	return myLibrary, nil
}

// SaveDB creates a new record in the library table for this library
func (myLibrary *Library) SaveDB(ctx context.Context) error {
	_, err := myLibrary.Pool.Exec(ctx, `INSERT INTO library ("name", "owner") VALUES ($1, $2)`, myLibrary.Name, myLibrary.Owner)
	return err
}

// NumImports returns the number of files imported into the library
func (myLibrary *Library) NumImports(ctx context.Context) (int, error) {
	count := 0
	err := myLibrary.Pool.QueryRow(ctx, "SELECT count(*) FROM cotahist_imports").Scan(&count)
	return count, err
}

// LastUpdated returns the time of the most recent import
func (myLibrary *Library) LastUpdated(ctx context.Context) (time.Time, error) {
	var lastUpdated time.Time
	err := myLibrary.Pool.QueryRow(ctx, "SELECT coalesce(max(imported_on), '0001-01-01'::timestamp) FROM cotahist_imports").Scan(&lastUpdated)
	if err != nil {
		return time.Time{}, err
	}

	return lastUpdated, nil
}

// TotalRecords returns the number of quotes stored in the library
func (myLibrary *Library) TotalRecords(ctx context.Context) (int64, error) {
	var count int64
	err := myLibrary.Pool.QueryRow(ctx, "SELECT count(*) FROM cotahist_quotes").Scan(&count)
	return count, err
}

// TotalSecurities returns the number of distinct ISINs in the library
func (myLibrary *Library) TotalSecurities(ctx context.Context) (int64, error) {
	var count int64
	err := myLibrary.Pool.QueryRow(ctx, "SELECT count(DISTINCT isin) FROM cotahist_quotes").Scan(&count)
	return count, err
}
