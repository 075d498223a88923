/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package extract

import (
	"context"
	"log"
	"time"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"
)

// Extractor ties one compiled query package to a connection and runs
// the pull-validate-dedupe pipeline. One extractor serves one run;
// nothing here is safe for concurrent use.
type Extractor struct {
	db  Querier
	pkg *query.Package
}

// Result is the outcome of one extraction run: the deduplicated table
// and the rows that were removed as exact repeats.
type Result struct {
	Clean      *Table
	Duplicates *Table
}

func NewExtractor(db Querier, pkg *query.Package) *Extractor {
	return &Extractor{db: db, pkg: pkg}
}

// Run executes the compiled query, checks the result against the
// expected schema, and splits the table into clean rows and duplicates.
// It fails fast on the first error; nothing is retried.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	log.Println("INFO: Starting extraction run...")

	table, err := Pull(ctx, e.db, e.pkg.Query())
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Pulled %d row(s), %d column(s).", len(table.Rows), len(table.Columns))

	missing, err := CheckSchema(table, e.pkg.Schema())
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		log.Printf("ERROR: Missing fields from table: %v", missing)
		return nil, &ErrSchemaMismatch{MissingFields: missing}
	}

	clean, duplicates := Dedupe(table)
	if len(duplicates.Rows) > 0 {
		log.Printf("INFO: Removed %d duplicate row(s).", len(duplicates.Rows))
	}

	log.Printf("INFO: Extraction run completed in %s. %d clean row(s).", time.Since(startTime), len(clean.Rows))
	return &Result{Clean: clean, Duplicates: duplicates}, nil
}
