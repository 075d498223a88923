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

import "strings"

// CheckSchema returns the expected columns absent from the table, in
// schema order. An empty result means the table matches.
func CheckSchema(table *Table, schema []string) ([]string, error) {
	if table.Empty() {
		return nil, &ErrEmptyResult{Msg: "table is empty when checking schema"}
	}
	var missing []string
	for _, field := range schema {
		if !table.HasColumn(field) {
			missing = append(missing, field)
		}
	}
	return missing, nil
}

// Dedupe splits the table into unique rows and exact repeats. The first
// occurrence of each row is kept; both outputs preserve original row
// order. Running Dedupe on an already-deduplicated table returns the
// same clean table and an empty duplicates table.
func Dedupe(table *Table) (clean, duplicates *Table) {
	clean = &Table{Columns: table.Columns}
	duplicates = &Table{Columns: table.Columns}

	seen := make(map[string]bool, len(table.Rows))
	for _, row := range table.Rows {
		key := rowKey(row)
		if seen[key] {
			duplicates.Rows = append(duplicates.Rows, row)
			continue
		}
		seen[key] = true
		clean.Rows = append(clean.Rows, row)
	}
	return clean, duplicates
}

func rowKey(row []string) string {
	// \x1f never occurs in survey text; it keeps ("a","bc") distinct
	// from ("ab","c").
	return strings.Join(row, "\x1f")
}
