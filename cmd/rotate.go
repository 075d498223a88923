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

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/archive"
	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/utils"
)

// rotateCmd represents the rotate command
var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Prune old snapshot folders down to the retention limit",
	Long: `Lists the snapshot folders under the project's archive prefix and deletes the
oldest ones until the retention limit is met. In dry-run mode the folder count is
reported without deleting anything.`,
	Example:           `./survey_data_archiver rotate --project Helene --bucket my-archive-bucket --archive-limit 30 --dry-run=false`,
	PersistentPreRunE: initFlagsAndConfig,
	RunE:              runRotate,
}

func runRotate(cmd *cobra.Command, args []string) error {
	projectName := cmd.Flag("project").Value.String()
	if projectName == "" {
		return fmt.Errorf("--project is required")
	}

	store, err := setupStore()
	if err != nil {
		return err
	}

	archiveCfg := archiveConfigFor(projectName)
	prefix := archiveCfg.ArchivePrefix()
	ctx := cmd.Context()

	listing, err := store.List(ctx, prefix, "/")
	if err != nil {
		return fmt.Errorf("failed to list archive folders: %w", err)
	}
	log.Printf("INFO: Archive %q holds %d folder(s); retention limit is %d.", prefix, len(listing.CommonPrefixes), archiveCfg.Limit)

	if dryRun {
		log.Println("INFO: Rotate operation completed in dry-run mode. Nothing was deleted.")
		return nil
	}

	excess := len(listing.CommonPrefixes) - archiveCfg.Limit
	if excess <= 0 {
		log.Println("INFO: Archive is within the retention limit. Nothing to delete.")
		return nil
	}
	if !utils.ConfirmAction(fmt.Sprintf("deletion of the %d oldest folder(s) under %q", excess, prefix)) {
		log.Println("INFO: Rotation aborted by user.")
		return nil
	}

	if err := archive.NewRotator(store, 0).Maintain(ctx, prefix, archiveCfg.Limit); err != nil {
		return fmt.Errorf("rotation failed: %w", err)
	}

	log.Println("INFO: Rotate operation completed.")
	return nil
}

func init() {
	var project string
	rotateCmd.Flags().StringVar(&project, "project", "", "Project name whose archive to prune")
}
