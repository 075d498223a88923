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
	"database/sql"
	"fmt"
	"time"
)

// Querier is the connection capability the executor needs: run one
// statement, describe its columns, fetch all rows. *sql.DB satisfies it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Pull executes the query and materializes every row into a Table.
// Execution failures and materialization failures are reported as
// distinct error kinds so callers can tell a connectivity problem from a
// row-shape problem.
func Pull(ctx context.Context, db Querier, query string) (*Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ErrExecution{Msg: "failed to pull rows from query execute", Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ErrMaterialization{Msg: "failed to describe result columns", Err: err}
	}

	table := &Table{Columns: columns}
	values := make([]interface{}, len(columns))
	for i := range values {
		values[i] = new(interface{})
	}

	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return nil, &ErrMaterialization{
				Msg: fmt.Sprintf("rows pulled, failed to convert row %d to table", len(table.Rows)+1),
				Err: err,
			}
		}
		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = formatValue(*(v.(*interface{})))
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrExecution{Msg: "row iteration failed", Err: err}
	}

	return table, nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}
