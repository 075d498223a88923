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
package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"
)

func newPackageCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, name := range []string{"project", "query-spec", "query-file", "schema", "exclude"} {
		c.Flags().String(name, "", "")
	}
	for name, value := range flags {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatalf("setting flag %q: %v", name, err)
		}
	}
	return c
}

func TestBuildPackageInputSelection(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{
			name: "descriptor and literal query together",
			flags: map[string]string{
				"project":    "Helene",
				"query-spec": "helene.json",
				"query-file": "helene.sql",
			},
		},
		{
			name:  "neither descriptor nor literal query",
			flags: map[string]string{"project": "Helene"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildPackage(newPackageCommand(t, tt.flags))
			if err == nil {
				t.Fatal("buildPackage() returned nil error")
			}
			var cfgErr *query.ErrConfiguration
			if !errors.As(err, &cfgErr) {
				t.Fatalf("buildPackage() error = %v, want *query.ErrConfiguration", err)
			}
			if cfgErr.Stage != query.StagePackage {
				t.Errorf("stage = %q, want %q", cfgErr.Stage, query.StagePackage)
			}
		})
	}
}

func TestBuildPackageRequiresProject(t *testing.T) {
	_, _, err := buildPackage(newPackageCommand(t, map[string]string{"query-spec": "helene.json"}))
	if err == nil {
		t.Error("buildPackage() returned nil error without a project name")
	}
}

func TestBuildPackageLiteralQuery(t *testing.T) {
	queryFile := filepath.Join(t.TempDir(), "helene.sql")
	if err := os.WriteFile(queryFile, []byte("SELECT app.id AS application_id FROM application_data_application app;"), 0o644); err != nil {
		t.Fatalf("writing query file: %v", err)
	}

	pkg, projectName, err := buildPackage(newPackageCommand(t, map[string]string{
		"project":    "Helene",
		"query-file": queryFile,
		"schema":     "application_id",
	}))
	if err != nil {
		t.Fatalf("buildPackage() returned error: %v", err)
	}
	if projectName != "Helene" {
		t.Errorf("project = %q, want Helene", projectName)
	}
	if !pkg.Literal() {
		t.Error("Literal() = false for a literal query file")
	}
	if got := pkg.Schema(); len(got) != 1 || got[0] != "application_id" {
		t.Errorf("schema = %v, want [application_id]", got)
	}
}
