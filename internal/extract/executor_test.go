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
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const testQuery = "SELECT id, name FROM things;"

func TestPullMaterializesRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "note", "created_at"}).
		AddRow(int64(7), []byte("alpha"), nil, created).
		AddRow(int64(8), "beta", "plain", created)
	mock.ExpectQuery(regexp.QuoteMeta(testQuery)).WillReturnRows(rows)

	table, err := Pull(context.Background(), db, testQuery)
	if err != nil {
		t.Fatalf("Pull() returned error: %v", err)
	}

	if len(table.Columns) != 4 {
		t.Fatalf("columns = %v, want 4 entries", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}

	want := []string{"7", "alpha", "", "2024-05-01 12:30:00"}
	for i, cell := range want {
		if table.Rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, table.Rows[0][i], cell)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPullExecutionError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(testQuery)).WillReturnError(fmt.Errorf("connection refused"))

	_, err = Pull(context.Background(), db, testQuery)
	if err == nil {
		t.Fatal("Pull() returned nil error")
	}
	var execErr *ErrExecution
	if !errors.As(err, &execErr) {
		t.Errorf("Pull() error = %v, want *ErrExecution", err)
	}
}

func TestPullRowIterationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow(int64(1)).
		AddRow(int64(2)).
		RowError(1, fmt.Errorf("cursor lost"))
	mock.ExpectQuery(regexp.QuoteMeta(testQuery)).WillReturnRows(rows)

	_, err = Pull(context.Background(), db, testQuery)
	if err == nil {
		t.Fatal("Pull() returned nil error")
	}
	var execErr *ErrExecution
	if !errors.As(err, &execErr) {
		t.Errorf("Pull() error = %v, want *ErrExecution", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"bytes", []byte("x"), "x"},
		{"string", "y", "y"},
		{"int64", int64(42), "42"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
