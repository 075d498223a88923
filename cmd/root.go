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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/archive"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/config"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/database"
	_ "github.com/GoogleCloudPlatform/survey-data-archiver/internal/database/mysql"
	_ "github.com/GoogleCloudPlatform/survey-data-archiver/internal/database/postgres"
	_ "github.com/GoogleCloudPlatform/survey-data-archiver/internal/database/sqlserver"
)

var (
	dryRun bool

	// Database connection flags
	dialect                        string
	host                           string
	port                           int
	username                       string
	password                       string
	dbName                         string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	// Object store flags
	bucket    string
	region    string
	endpoint  string
	accessKey string
	secretKey string

	// Archive layout flags
	projectFolder  string
	archiveFolder  string
	activeFolder   string
	activeFileName string
	archiveLimit   int

	projectsFile string
)

var rootCmd = &cobra.Command{
	Use:   "survey_data_archiver",
	Short: "A tool to extract survey data and archive it to an object store",
	Long: `survey_data_archiver is a CLI tool that pulls survey answers out of a
relational database with a compiled join query, separates duplicates, and ships
the results to an S3-compatible bucket with bounded snapshot retention.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig builds the global configuration from command flags,
// falling back to ARCHIVER_* environment variables for values not set on
// the command line.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("ARCHIVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	pickString := func(flagValue, flagName, viperKey string) string {
		if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
			return flagValue
		}
		if viperValue := viper.GetString(viperKey); viperValue != "" {
			return viperValue
		}
		return flagValue
	}
	pickInt := func(flagValue int, flagName, viperKey string) int {
		if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
			return flagValue
		}
		if viperValue := viper.GetInt(viperKey); viperValue != 0 {
			return viperValue
		}
		return flagValue
	}

	cfg := config.GetConfig()

	if dialect != "" {
		cfg.Database.Dialect = dialect
	}
	if host != "" {
		cfg.Database.Host = host
	}
	if port != 0 {
		cfg.Database.Port = port
	}
	cfg.Database.User = pickString(username, "username", "db_user")
	cfg.Database.Password = pickString(password, "password", "db_password")
	cfg.Database.DBName = pickString(dbName, "database", "db_name")
	cfg.Database.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
	cfg.Database.UsePrivateIP = cloudSQLUsePrivateIP

	cfg.Storage.Bucket = pickString(bucket, "bucket", "bucket")
	cfg.Storage.Region = pickString(region, "region", "region")
	cfg.Storage.Endpoint = pickString(endpoint, "endpoint", "endpoint")
	cfg.Storage.AccessKey = pickString(accessKey, "access-key", "access_key")
	cfg.Storage.SecretKey = pickString(secretKey, "secret-key", "secret_key")

	if projectFolder != "" && !strings.HasSuffix(projectFolder, "/") {
		projectFolder += "/"
	}
	cfg.Archive.ProjectFolder = projectFolder
	if archiveFolder != "" {
		cfg.Archive.ArchiveFolder = archiveFolder
	}
	if activeFolder != "" {
		cfg.Archive.ActiveFolder = activeFolder
	}
	if activeFileName != "" {
		cfg.Archive.ActiveFileName = activeFileName
	}
	if limit := pickInt(archiveLimit, "archive-limit", "archive_limit"); limit > 0 {
		cfg.Archive.Limit = limit
	}

	if projectsFile != "" {
		registry, err := config.LoadProjects(projectsFile)
		if err != nil {
			return err
		}
		cfg.Projects = registry
	}

	config.SetConfig(cfg)
	return nil
}

func validateDialect(dialect string) error {
	supportedDialects := []string{"postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver", "cloudsqlsqlserver"}
	isValidDialect := false
	for _, supportedDialect := range supportedDialects {
		if dialect == supportedDialect {
			isValidDialect = true
			break
		}
	}
	if !isValidDialect {
		return fmt.Errorf("unsupported dialect: %s (only %s are supported)", dialect, strings.Join(supportedDialects, ", "))
	}
	return nil
}

func setupDatabase() (*database.DB, error) {
	dbConfig := config.Current().Database
	db, err := database.New(dbConfig)
	if err != nil {
		log.Println("ERROR: Failed to connect to database:", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func setupStore() (*archive.S3Store, error) {
	storageConfig := config.Current().Storage
	if storageConfig.Bucket == "" {
		return nil, fmt.Errorf("bucket is not configured (use --bucket or ARCHIVER_BUCKET)")
	}
	store, err := archive.NewS3Store(storageConfig)
	if err != nil {
		log.Println("ERROR: Failed to open object store session:", err)
		return nil, fmt.Errorf("failed to open object store session: %w", err)
	}
	return store, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", true, "Enable dry-run mode (no uploads or deletions)")

	// Database connection flags
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", fmt.Sprintf("Database dialect (%s)", strings.Join([]string{"postgres", "mysql", "sqlserver", "cloudsqlpostgres", "cloudsqlmysql", "cloudsqlsqlserver"}, ", ")))
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Database port")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username (env: ARCHIVER_DB_USER)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password (env: ARCHIVER_DB_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name (env: ARCHIVER_DB_NAME)")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection (Cloud SQL)")

	// Object store flags
	rootCmd.PersistentFlags().StringVar(&bucket, "bucket", "", "Object store bucket name (env: ARCHIVER_BUCKET)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "Object store region (env: ARCHIVER_REGION)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Custom S3-compatible endpoint (env: ARCHIVER_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&accessKey, "access-key", "", "Static access key for custom endpoints (env: ARCHIVER_ACCESS_KEY)")
	rootCmd.PersistentFlags().StringVar(&secretKey, "secret-key", "", "Static secret key for custom endpoints (env: ARCHIVER_SECRET_KEY)")

	// Archive layout flags
	rootCmd.PersistentFlags().StringVar(&projectFolder, "project-folder", "", "Key prefix for this project's data (defaults to '<project name>/')")
	rootCmd.PersistentFlags().StringVar(&archiveFolder, "archive-folder", "", "Snapshot folder name under the project folder (default 'archive/')")
	rootCmd.PersistentFlags().StringVar(&activeFolder, "active-folder", "", "Active folder name under the project folder (default 'active/')")
	rootCmd.PersistentFlags().StringVar(&activeFileName, "active-file", "", "Active extract file name (default 'Active-Data.csv')")
	rootCmd.PersistentFlags().IntVar(&archiveLimit, "archive-limit", 0, "Maximum number of retained snapshot folders (env: ARCHIVER_ARCHIVE_LIMIT, default 30)")

	rootCmd.PersistentFlags().StringVar(&projectsFile, "projects", "", "JSON file mapping project names to ids, replacing the built-in registry")

	// Add subcommands
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(showQueryCmd)
	rootCmd.AddCommand(rotateCmd)
}
