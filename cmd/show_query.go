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
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/utils"
)

// showQueryCmd represents the show-query command
var showQueryCmd = &cobra.Command{
	Use:   "show-query",
	Short: "Compile the extract query and write it to a file for review",
	Long: `Compiles the query spec into its SQL statement and expected schema without
touching the database or the bucket. Useful for reviewing what extract would run.`,
	Example:           `./survey_data_archiver show-query --project Helene --query-spec ./helene.json --out_file ./helene_query.sql`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runShowQuery,
}

func runShowQuery(cmd *cobra.Command, args []string) error {
	pkg, projectName, err := buildPackage(cmd)
	if err != nil {
		return err
	}

	outputFile := cmd.Flag("out_file").Value.String()
	if outputFile == "" {
		outputFile = utils.GetDefaultOutputFilePath(projectName, "show-query")
	}

	var out strings.Builder
	out.WriteString(pkg.Query())
	out.WriteString("\n\n-- expected columns: ")
	out.WriteString(strings.Join(pkg.Schema(), ", "))
	out.WriteString("\n")

	if err := os.WriteFile(outputFile, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write query file: %w", err)
	}

	log.Println("INFO: Compiled query has been written to:", outputFile)
	return nil
}

func init() {
	var project string
	var querySpecFile string
	var queryFile string
	var schema string
	var exclude string
	var outputFile string

	showQueryCmd.Flags().StringVar(&project, "project", "", "Project name to compile for (must exist in the project registry)")
	showQueryCmd.Flags().StringVar(&querySpecFile, "query-spec", "", "JSON query spec describing the source table and join items")
	showQueryCmd.Flags().StringVar(&queryFile, "query-file", "", "File containing a literal SQL query (requires --schema)")
	showQueryCmd.Flags().StringVar(&schema, "schema", "", "Comma-separated expected output columns for --query-file")
	showQueryCmd.Flags().StringVar(&exclude, "exclude", "", "Comma-separated output columns to drop from the expected schema")
	showQueryCmd.Flags().StringVarP(&outputFile, "out_file", "o", "", "File path for the compiled SQL (defaults to <project>_query.sql)")
}
