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

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/archive"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/config"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/extract"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/utils"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the extract query and archive the results to the bucket",
	Long: `Connects to the database, runs the compiled extract query for the selected
project, splits the result into clean rows and duplicates, and uploads both as a new
timestamped snapshot folder. The active extract file is overwritten with the clean rows.
Old snapshots beyond the retention limit are deleted first.`,
	Example:           `./survey_data_archiver extract --project Helene --query-spec ./helene.json --dialect postgres --host localhost --port 5432 --username user --password pass --database surveys --bucket my-archive-bucket --dry-run=false`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runExtract,
}

// buildPackage compiles the query package selected by the command's
// flags: either a query spec descriptor or a literal SQL file with an
// explicit schema. Returns the package and the resolved project name.
func buildPackage(cmd *cobra.Command) (*query.Package, string, error) {
	projectName := cmd.Flag("project").Value.String()
	if projectName == "" {
		return nil, "", fmt.Errorf("--project is required")
	}

	specFile := cmd.Flag("query-spec").Value.String()
	queryFile := cmd.Flag("query-file").Value.String()
	if specFile != "" && queryFile != "" {
		return nil, "", &query.ErrConfiguration{Stage: query.StagePackage, Msg: "--query-spec and --query-file are mutually exclusive"}
	}

	exclude := utils.ParseListFlag(cmd.Flag("exclude").Value.String())

	if queryFile != "" {
		sql, err := utils.ReadQueryFile(queryFile)
		if err != nil {
			return nil, "", err
		}
		schema := utils.ParseListFlag(cmd.Flag("schema").Value.String())
		pkg, err := query.NewLiteral(sql, schema, query.WithExclude(exclude...))
		if err != nil {
			return nil, "", err
		}
		return pkg, projectName, nil
	}

	if specFile == "" {
		return nil, "", &query.ErrConfiguration{Stage: query.StagePackage, Msg: "either --query-spec or --query-file must be provided"}
	}

	projectID, err := config.Current().Projects.Resolve(projectName)
	if err != nil {
		return nil, "", err
	}

	spec, err := config.LoadQuerySpec(specFile)
	if err != nil {
		return nil, "", err
	}
	source, joins := spec.Build(projectID)
	pkg, err := query.New(source, joins, query.WithExclude(exclude...))
	if err != nil {
		return nil, "", err
	}
	return pkg, projectName, nil
}

// archiveConfigFor fills in the project folder default when the flag was
// not given: the project's own name as the top-level prefix.
func archiveConfigFor(projectName string) config.ArchiveConfig {
	archiveCfg := config.Current().Archive
	if archiveCfg.ProjectFolder == "" {
		archiveCfg.ProjectFolder = projectName + "/"
	}
	return archiveCfg
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := validateDialect(config.Current().Database.Dialect); err != nil {
		return err
	}

	pkg, projectName, err := buildPackage(cmd)
	if err != nil {
		return err
	}

	log.Println("INFO: Starting extract operation", "project:", projectName, "dialect:", config.Current().Database.Dialect)

	db, err := setupDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	result, err := extract.NewExtractor(db, pkg).Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	outputFile := cmd.Flag("out_file").Value.String()
	if outputFile == "" {
		outputFile = utils.GetDefaultOutputFilePath(projectName, "extract")
	}
	body, err := archive.EncodeCSV(result.Clean)
	if err != nil {
		return fmt.Errorf("failed to encode extract for review: %w", err)
	}
	if err := os.WriteFile(outputFile, body, 0o644); err != nil {
		return fmt.Errorf("failed to write review file: %w", err)
	}
	log.Println("INFO: Extracted rows have been written to:", outputFile)

	if dryRun {
		log.Println("INFO: Extract operation completed in dry-run mode. Nothing was uploaded.")
		return nil
	}

	description := fmt.Sprintf("extract of %d clean row(s) and %d duplicate(s) for project %s (see %s)",
		len(result.Clean.Rows), len(result.Duplicates.Rows), projectName, outputFile)
	if !utils.ConfirmAction(description) {
		log.Println("INFO: Upload aborted by user.")
		return nil
	}

	store, err := setupStore()
	if err != nil {
		return err
	}

	archiveCfg := archiveConfigFor(projectName)
	writer := archive.NewWriter(store, archive.NewRotator(store, 0), nil)

	if err := writer.AddSnapshot(ctx, result.Clean, result.Duplicates, archiveCfg.ArchivePrefix(), archiveCfg.Limit); err != nil {
		return fmt.Errorf("failed to archive snapshot: %w", err)
	}
	if err := writer.UpdateActive(ctx, archiveCfg.ActiveKey(), result.Clean); err != nil {
		return fmt.Errorf("failed to update active file: %w", err)
	}

	log.Println("INFO: Extract operation completed.")
	return nil
}

func init() {
	var project string
	var querySpecFile string
	var queryFile string
	var schema string
	var exclude string
	var outputFile string

	extractCmd.Flags().StringVar(&project, "project", "", "Project name to extract (must exist in the project registry)")
	extractCmd.Flags().StringVar(&querySpecFile, "query-spec", "", "JSON query spec describing the source table and join items")
	extractCmd.Flags().StringVar(&queryFile, "query-file", "", "File containing a literal SQL query (requires --schema)")
	extractCmd.Flags().StringVar(&schema, "schema", "", "Comma-separated expected output columns for --query-file")
	extractCmd.Flags().StringVar(&exclude, "exclude", "", "Comma-separated output columns to drop from the expected schema")
	extractCmd.Flags().StringVarP(&outputFile, "out_file", "o", "", "File path for the local review copy of the extract (defaults to <project>_extract.csv)")
}
