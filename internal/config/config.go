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

import "github.com/GoogleCloudPlatform/survey-data-archiver/internal/query"

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Archive  ArchiveConfig
	Projects query.Registry
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Dialect                        string
	Host                           string
	Port                           int
	User                           string
	Password                       string
	DBName                         string
	SSLMode                        string
	CloudSQLInstanceConnectionName string
	UsePrivateIP                   bool
}

// StorageConfig holds object store connection configuration. Endpoint
// and static keys are only needed for S3-compatible stores outside AWS.
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ArchiveConfig holds the persisted layout under the project folder and
// the snapshot retention limit.
type ArchiveConfig struct {
	ProjectFolder  string
	ArchiveFolder  string
	ActiveFolder   string
	ActiveFileName string
	Limit          int
}

// ArchivePrefix is the key prefix snapshot folders live under.
func (a ArchiveConfig) ArchivePrefix() string {
	return a.ProjectFolder + a.ArchiveFolder
}

// ActiveKey is the full key of the single active extract object.
func (a ArchiveConfig) ActiveKey() string {
	return a.ProjectFolder + a.ActiveFolder + a.ActiveFileName
}

var globalConfig *Config

// GetConfig returns a default configuration. Connection values are set
// by flags in cmd/root.go. The default project registry carries the
// projects currently reported on; --projects replaces it wholesale.
func GetConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dialect: "postgres",
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
		},
		Archive: ArchiveConfig{
			ArchiveFolder:  "archive/",
			ActiveFolder:   "active/",
			ActiveFileName: "Active-Data.csv",
			Limit:          30,
		},
		Projects: query.Registry{
			"Helene": 34,
			"Milton": 37,
		},
	}
}

// SetConfig sets the global configuration.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// Current returns the configuration set by the CLI, or the defaults if
// none has been set yet.
func Current() *Config {
	if globalConfig == nil {
		return GetConfig()
	}
	return globalConfig
}
