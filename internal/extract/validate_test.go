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
	"errors"
	"reflect"
	"testing"
)

func TestCheckSchemaEmptyTable(t *testing.T) {
	table := &Table{Columns: []string{"a"}}
	_, err := CheckSchema(table, []string{"a"})
	if err == nil {
		t.Fatal("CheckSchema() returned nil error for empty table")
	}
	var emptyErr *ErrEmptyResult
	if !errors.As(err, &emptyErr) {
		t.Errorf("CheckSchema() error = %v, want *ErrEmptyResult", err)
	}
}

func TestCheckSchemaMissingFields(t *testing.T) {
	table := &Table{
		Columns: []string{"application_id", "status"},
		Rows:    [][]string{{"1", "open"}},
	}

	missing, err := CheckSchema(table, []string{"application_id", "full_name", "status", "city"})
	if err != nil {
		t.Fatalf("CheckSchema() returned error: %v", err)
	}
	want := []string{"full_name", "city"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestCheckSchemaMatch(t *testing.T) {
	table := &Table{
		Columns: []string{"application_id", "status", "extra"},
		Rows:    [][]string{{"1", "open", "x"}},
	}

	missing, err := CheckSchema(table, []string{"application_id", "status"})
	if err != nil {
		t.Fatalf("CheckSchema() returned error: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none; extra table columns are allowed", missing)
	}
}

func TestDedupe(t *testing.T) {
	table := &Table{
		Columns: []string{"id", "name"},
		Rows: [][]string{
			{"1", "alpha"},
			{"2", "beta"},
			{"1", "alpha"},
			{"3", "gamma"},
			{"2", "beta"},
		},
	}

	clean, duplicates := Dedupe(table)

	wantClean := [][]string{{"1", "alpha"}, {"2", "beta"}, {"3", "gamma"}}
	if !reflect.DeepEqual(clean.Rows, wantClean) {
		t.Errorf("clean rows = %v, want %v", clean.Rows, wantClean)
	}
	wantDup := [][]string{{"1", "alpha"}, {"2", "beta"}}
	if !reflect.DeepEqual(duplicates.Rows, wantDup) {
		t.Errorf("duplicate rows = %v, want %v", duplicates.Rows, wantDup)
	}

	// A second pass over the clean table is a no-op.
	again, rest := Dedupe(clean)
	if !reflect.DeepEqual(again.Rows, wantClean) || len(rest.Rows) != 0 {
		t.Errorf("Dedupe is not idempotent: clean=%v duplicates=%v", again.Rows, rest.Rows)
	}
}

func TestDedupeCellBoundaries(t *testing.T) {
	// ("a","bc") and ("ab","c") concatenate identically; they must not be
	// treated as duplicates of each other.
	table := &Table{
		Columns: []string{"x", "y"},
		Rows:    [][]string{{"a", "bc"}, {"ab", "c"}},
	}
	clean, duplicates := Dedupe(table)
	if len(clean.Rows) != 2 || len(duplicates.Rows) != 0 {
		t.Errorf("clean=%v duplicates=%v, want both rows kept", clean.Rows, duplicates.Rows)
	}
}
