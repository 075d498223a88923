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
package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/config"
)

// mockHandler records which pool constructor was used.
type mockHandler struct {
	pool          *sql.DB
	err           error
	cloudCalls    int
	standardCalls int
}

func (h *mockHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	h.cloudCalls++
	return h.pool, h.err
}

func (h *mockHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	h.standardCalls++
	return h.pool, h.err
}

func (h *mockHandler) QuoteIdentifier(name string) string { return name }

func newMockPool(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	pool, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}
	return pool, mock
}

func TestGetDialectHandlerUnknown(t *testing.T) {
	if _, err := GetDialectHandler("oracle"); err == nil {
		t.Error("GetDialectHandler(oracle) returned nil error")
	}
}

func TestNewStandardPool(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectPing()

	handler := &mockHandler{pool: pool}
	RegisterDialectHandler("mockdb", handler)

	db, err := New(config.DatabaseConfig{Dialect: "mockdb"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer db.Close()

	if handler.standardCalls != 1 || handler.cloudCalls != 0 {
		t.Errorf("standard=%d cloud=%d, want standard pool creation only", handler.standardCalls, handler.cloudCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNewCloudSQLPool(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectPing()

	handler := &mockHandler{pool: pool}
	RegisterDialectHandler("cloudsqlmock", handler)

	db, err := New(config.DatabaseConfig{Dialect: "cloudsqlmock"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer db.Close()

	if handler.cloudCalls != 1 || handler.standardCalls != 0 {
		t.Errorf("standard=%d cloud=%d, want CloudSQL pool creation only", handler.standardCalls, handler.cloudCalls)
	}
}

func TestNewPingFailure(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectPing().WillReturnError(fmt.Errorf("no route to host"))
	mock.ExpectClose()

	RegisterDialectHandler("mockdb-down", &mockHandler{pool: pool})

	if _, err := New(config.DatabaseConfig{Dialect: "mockdb-down"}); err == nil {
		t.Fatal("New() returned nil error when ping fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("pool was not closed after ping failure: %v", err)
	}
}

func TestNewUnknownDialect(t *testing.T) {
	if _, err := New(config.DatabaseConfig{Dialect: "nonexistent"}); err == nil {
		t.Error("New() returned nil error for unregistered dialect")
	}
}

func TestQueryContextPassthrough(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectPing()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	RegisterDialectHandler("mockdb-query", &mockHandler{pool: pool})
	db, err := New(config.DatabaseConfig{Dialect: "mockdb-query"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("QueryContext() returned error: %v", err)
	}
	rows.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
