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
	"fmt"
	"strings"
)

// ErrExecution represents a failure to run the query: connectivity or
// the statement itself.
type ErrExecution struct {
	Msg string
	Err error
}

func (e *ErrExecution) Error() string {
	return fmt.Sprintf("query execution error: %s: %v", e.Msg, e.Err)
}

func (e *ErrExecution) Unwrap() error {
	return e.Err
}

// ErrMaterialization represents a failure to assemble fetched rows into
// a table: a row/column shape mismatch rather than a query problem.
type ErrMaterialization struct {
	Msg string
	Err error
}

func (e *ErrMaterialization) Error() string {
	return fmt.Sprintf("row materialization error: %s: %v", e.Msg, e.Err)
}

func (e *ErrMaterialization) Unwrap() error {
	return e.Err
}

// ErrEmptyResult is returned when the query produced zero rows; the
// schema of an empty table cannot be meaningfully checked.
type ErrEmptyResult struct {
	Msg string
}

func (e *ErrEmptyResult) Error() string {
	return fmt.Sprintf("empty result: %s", e.Msg)
}

// ErrSchemaMismatch carries the expected columns missing from the table.
type ErrSchemaMismatch struct {
	MissingFields []string
}

func (e *ErrSchemaMismatch) Error() string {
	return fmt.Sprintf("table schema did not match, missing fields: [%s]",
		strings.Join(e.MissingFields, ", "))
}
