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
package archive

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/extract"
)

const (
	// DuplicatesFileName is the duplicates export inside every snapshot.
	DuplicatesFileName = "Duplicates.csv"

	// folderTimeLayout names snapshot folders. The file timestamp uses
	// dashes throughout because colons after the date portion read as a
	// time in the folder name but not in a file name.
	folderTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout   = "2006-01-02-15:04:05"
)

// Writer creates snapshot folders and maintains the single active
// extract object. Snapshot writes are not transactional; a failure
// mid-upload leaves already-committed objects in place.
type Writer struct {
	store   ObjectStore
	rotator *Rotator
	now     func() time.Time
}

// NewWriter builds a writer. now may be nil, selecting time.Now.
func NewWriter(store ObjectStore, rotator *Rotator, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{store: store, rotator: rotator, now: now}
}

// AddSnapshot prunes the archive to the retention limit, then uploads
// the duplicates table and the clean table into a new timestamped
// folder under prefix. Rotation runs first so storage peaks at limit+1
// folders during the write.
func (w *Writer) AddSnapshot(ctx context.Context, clean, duplicates *extract.Table, prefix string, limit int) error {
	if err := w.rotator.Maintain(ctx, prefix, limit); err != nil {
		return fmt.Errorf("failed to clean archive folder before upload: %w", err)
	}

	folder := prefix + w.now().Format(folderTimeLayout) + "/"
	if err := w.store.Put(ctx, folder, nil); err != nil {
		return &ErrUpload{Key: folder, Op: "put", Err: err}
	}
	log.Printf("INFO: Created archive folder %q.", folder)

	dupBody, err := EncodeCSV(duplicates)
	if err != nil {
		return fmt.Errorf("failed to encode duplicates table: %w", err)
	}
	dupKey := folder + DuplicatesFileName
	if err := w.store.Put(ctx, dupKey, dupBody); err != nil {
		return &ErrUpload{Key: dupKey, Op: "put", Err: err}
	}

	cleanBody, err := EncodeCSV(clean)
	if err != nil {
		return fmt.Errorf("failed to encode clean table: %w", err)
	}
	// Re-read the clock: the file timestamp may differ from the folder
	// name by however long the uploads above took.
	dataKey := folder + "Archived-Data-" + w.now().Format(fileTimeLayout) + ".csv"
	if err := w.store.Put(ctx, dataKey, cleanBody); err != nil {
		return &ErrUpload{Key: dataKey, Op: "put", Err: err}
	}

	log.Printf("INFO: Archived %d clean row(s) and %d duplicate row(s) to %q.", len(clean.Rows), len(duplicates.Rows), folder)
	return nil
}

// UpdateActive overwrites (or creates) the single well-known object
// consumed by downstream reporting. Existence is probed first purely so
// the log can say which of the two happened; the outcome is identical.
func (w *Writer) UpdateActive(ctx context.Context, key string, table *extract.Table) error {
	listing, err := w.store.List(ctx, key, "")
	if err != nil {
		return fmt.Errorf("failed to check for active file %q: %w", key, err)
	}
	exists := false
	for _, obj := range listing.Objects {
		if obj.Key == key {
			exists = true
			break
		}
	}

	body, err := EncodeCSV(table)
	if err != nil {
		return fmt.Errorf("failed to encode active table: %w", err)
	}
	if err := w.store.Put(ctx, key, body); err != nil {
		return &ErrUpload{Key: key, Op: "put", Err: err}
	}

	if exists {
		log.Printf("INFO: Overwrote active file %q.", key)
	} else {
		log.Printf("INFO: Created active file %q (first upload).", key)
	}
	return nil
}
