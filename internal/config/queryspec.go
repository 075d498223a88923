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
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"
)

// QuerySpec is the on-disk form of one extract definition. Fields are
// arrays of column/output pairs rather than objects so their order
// survives decoding; the project filter comes from the registry, not
// the file.
type QuerySpec struct {
	Source SourceSpec `json:"source"`
	Joins  []JoinSpec `json:"joins"`
}

type SourceSpec struct {
	Table  string      `json:"table"`
	Alias  string      `json:"alias"`
	Fields []FieldSpec `json:"fields"`
	Order  string      `json:"order"`
}

type JoinSpec struct {
	Name        string      `json:"name"`
	Cardinality string      `json:"cardinality"`
	AnswerTable string      `json:"answer_table"`
	QuestionID  int         `json:"question_id"`
	Fields      []FieldSpec `json:"fields"`
	Clean       []CleanSpec `json:"clean,omitempty"`
}

type FieldSpec struct {
	Column string `json:"column"`
	Output string `json:"output"`
}

type CleanSpec struct {
	Field string   `json:"field"`
	Ops   []string `json:"ops"`
}

// LoadQuerySpec reads and decodes a query spec file.
func LoadQuerySpec(path string) (*QuerySpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query spec file '%s': %w", path, err)
	}
	var spec QuerySpec
	if err := json.Unmarshal(content, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse query spec file '%s': %w", path, err)
	}
	return &spec, nil
}

// Build converts the decoded spec into compiler inputs for the given
// project. Validation is the compiler's job, not the loader's.
func (s *QuerySpec) Build(projectID int) (query.Source, []query.JoinItem) {
	source := query.Source{
		Table:     s.Source.Table,
		Alias:     s.Source.Alias,
		Fields:    buildFields(s.Source.Fields),
		ProjectID: projectID,
		OrderBy:   s.Source.Order,
	}

	joins := make([]query.JoinItem, 0, len(s.Joins))
	for _, j := range s.Joins {
		item := query.JoinItem{
			Name:        j.Name,
			Cardinality: query.Cardinality(j.Cardinality),
			AnswerTable: j.AnswerTable,
			QuestionID:  j.QuestionID,
			Fields:      buildFields(j.Fields),
		}
		for _, c := range j.Clean {
			item.Clean = append(item.Clean, query.CleaningOp{Field: c.Field, Ops: c.Ops})
		}
		joins = append(joins, item)
	}
	return source, joins
}

func buildFields(specs []FieldSpec) []query.Field {
	fields := make([]query.Field, 0, len(specs))
	for _, f := range specs {
		fields = append(fields, query.Field{Column: f.Column, Output: f.Output})
	}
	return fields
}

// LoadProjects reads a name-to-id registry from a JSON object file,
// replacing the built-in default registry.
func LoadProjects(path string) (query.Registry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file '%s': %w", path, err)
	}
	var registry query.Registry
	if err := json.Unmarshal(content, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse projects file '%s': %w", path, err)
	}
	return registry, nil
}
