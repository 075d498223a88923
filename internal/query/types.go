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

// Package query compiles a declarative description of a survey extract
// (one source table plus an ordered list of question joins) into the
// expected output schema and the SQL statement that produces it.
package query

// Cardinality states how a question's answers relate to an application.
type Cardinality string

const (
	// Single answers join directly on the application id.
	Single Cardinality = "SINGLE"
	// Repeating answers join on the repeating section shared with the
	// first join item's bridge. The first item in a join list must itself
	// populate repeating_answer_section_id for this to resolve; a SINGLE
	// first item followed by REPEATING items is accepted but joins
	// against a bridge with no repeating-section semantics.
	Repeating Cardinality = "REPEATING"
)

// Field maps a column of the joined table to its output name in the
// extract. Order of fields is preserved end to end.
type Field struct {
	Column string
	Output string
}

// Source describes the anchor table of the extract. Exactly one source
// exists per package; every join hangs off it.
type Source struct {
	Table     string
	Alias     string
	Fields    []Field
	ProjectID int
	OrderBy   string
}

// CleaningOp records a downstream cleaning step for an output field.
// Advisory only; the compiler ignores it.
type CleaningOp struct {
	Field string
	Ops   []string
}

// JoinItem describes one question's answer table to outer-join against
// the source.
type JoinItem struct {
	Name        string
	Cardinality Cardinality
	AnswerTable string
	QuestionID  int
	Fields      []Field
	Clean       []CleaningOp
}
