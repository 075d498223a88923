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
package query

import (
	"fmt"
	"strings"
)

const (
	// answerHeaderTable is the generic per-question answer row joined
	// before the type-specific answer table.
	answerHeaderTable = "application_data_answer"

	// initialBridgeAlias names the first join item's answer-header
	// bridge. REPEATING items of every position correlate through this
	// alias, never through their own positional predecessor.
	initialBridgeAlias = "initial_join_answers"
)

// buildSchema collects the declared output names, source fields first,
// then join fields in join-list order.
func buildSchema(source *Source, joins []JoinItem, exclude []string) ([]string, error) {
	var schema []string
	for _, f := range source.Fields {
		schema = append(schema, f.Output)
	}
	for _, item := range joins {
		for _, f := range item.Fields {
			schema = append(schema, f.Output)
		}
	}
	if len(schema) == 0 {
		return nil, configErr(StageFields, "no output fields declared")
	}
	return filterSchema(schema, exclude), nil
}

func filterSchema(schema, exclude []string) []string {
	if len(exclude) == 0 {
		return schema
	}
	excluded := make(map[string]bool, len(exclude))
	for _, f := range exclude {
		excluded[f] = true
	}
	filtered := make([]string, 0, len(schema))
	for _, f := range schema {
		if !excluded[f] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// buildQuery compiles the source and join list into one SELECT statement.
// The WHERE and JOIN predicates interpolate configuration values directly
// into the SQL text; nothing here may ever be fed from untrusted input.
func buildQuery(source *Source, joins []JoinItem) (string, error) {
	var b strings.Builder

	selects := make([]string, 0, len(source.Fields))
	for _, f := range source.Fields {
		selects = append(selects, fmt.Sprintf("    %s.%s AS %s", source.Alias, f.Column, f.Output))
	}
	for _, item := range joins {
		for _, f := range item.Fields {
			selects = append(selects, fmt.Sprintf("    %s.%s AS %s", item.Name, f.Column, f.Output))
		}
	}

	b.WriteString("SELECT\n")
	b.WriteString(strings.Join(selects, ",\n"))
	b.WriteString("\n\nFROM\n")
	fmt.Fprintf(&b, "    %s %s\n", source.Table, source.Alias)

	for i, item := range joins {
		bridge := initialBridgeAlias
		if i > 0 {
			bridge = fmt.Sprintf("join_answers_%d", i)
		}

		switch item.Cardinality {
		case Single:
			fmt.Fprintf(&b, "\nLEFT JOIN %s %s ON %s.id = %s.application_id AND %s.question_id = %d",
				answerHeaderTable, bridge, source.Alias, bridge, bridge, item.QuestionID)
		case Repeating:
			fmt.Fprintf(&b, "\nLEFT JOIN %s %s ON %s.repeating_answer_section_id = %s.repeating_answer_section_id AND %s.question_id = %d",
				answerHeaderTable, bridge, initialBridgeAlias, bridge, bridge, item.QuestionID)
		default:
			return "", configErr(StageJoins, "join item %q has unknown cardinality %q", item.Name, item.Cardinality)
		}
		fmt.Fprintf(&b, "\nLEFT JOIN %s %s ON %s.id = %s.answer_ptr_id\n",
			item.AnswerTable, item.Name, bridge, item.Name)
	}

	b.WriteString("\nWHERE\n")
	fmt.Fprintf(&b, "    %s.project_id = %d\n", source.Alias, source.ProjectID)
	b.WriteString("ORDER BY\n")
	fmt.Fprintf(&b, "    %s.%s;", source.Alias, source.OrderBy)

	return b.String(), nil
}
