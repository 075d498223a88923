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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"
)

const sampleSpec = `{
  "source": {
    "table": "application_data_application",
    "alias": "app",
    "fields": [
      {"column": "id", "output": "application_id"},
      {"column": "status", "output": "status"}
    ],
    "order": "id"
  },
  "joins": [
    {
      "name": "full_name",
      "cardinality": "SINGLE",
      "answer_table": "application_data_textanswer",
      "question_id": 10,
      "fields": [{"column": "value", "output": "full_name"}],
      "clean": [{"field": "full_name", "ops": ["trim"]}]
    }
  ]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuerySpec(t *testing.T) {
	path := writeTempFile(t, "spec.json", sampleSpec)

	spec, err := LoadQuerySpec(path)
	require.NoError(t, err)

	source, joins := spec.Build(34)
	assert.Equal(t, "application_data_application", source.Table)
	assert.Equal(t, "app", source.Alias)
	assert.Equal(t, 34, source.ProjectID)
	assert.Equal(t, "id", source.OrderBy)
	require.Len(t, source.Fields, 2)
	assert.Equal(t, query.Field{Column: "id", Output: "application_id"}, source.Fields[0])

	require.Len(t, joins, 1)
	assert.Equal(t, "full_name", joins[0].Name)
	assert.Equal(t, query.Single, joins[0].Cardinality)
	assert.Equal(t, "application_data_textanswer", joins[0].AnswerTable)
	assert.Equal(t, 10, joins[0].QuestionID)
	require.Len(t, joins[0].Clean, 1)
	assert.Equal(t, []string{"trim"}, joins[0].Clean[0].Ops)

	// The loaded spec compiles as-is.
	_, err = query.New(source, joins)
	assert.NoError(t, err)
}

func TestLoadQuerySpecErrors(t *testing.T) {
	_, err := LoadQuerySpec(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTempFile(t, "bad.json", "{not json")
	_, err = LoadQuerySpec(path)
	assert.Error(t, err)
}

func TestLoadProjects(t *testing.T) {
	path := writeTempFile(t, "projects.json", `{"Helene": 34, "Milton": 37}`)

	registry, err := LoadProjects(path)
	require.NoError(t, err)
	assert.Equal(t, query.Registry{"Helene": 34, "Milton": 37}, registry)
}

func TestArchiveLayout(t *testing.T) {
	cfg := ArchiveConfig{
		ProjectFolder:  "Helene/",
		ArchiveFolder:  "archive/",
		ActiveFolder:   "active/",
		ActiveFileName: "Active-Data.csv",
	}
	assert.Equal(t, "Helene/archive/", cfg.ArchivePrefix())
	assert.Equal(t, "Helene/active/Active-Data.csv", cfg.ActiveKey())
}
