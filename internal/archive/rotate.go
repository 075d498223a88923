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
	"sort"
)

// DefaultMaxIterations bounds the rotation loop. It is a safety valve
// against listings that never converge (eventual-consistency anomalies,
// concurrent writers), not a domain limit.
const DefaultMaxIterations = 150

// Rotator prunes snapshot folders under a prefix down to a retention
// limit, oldest first. It assumes no concurrent writer is adding or
// removing folders while it runs; there is no locking, so an external
// writer can make the observe-then-delete loop mis-converge (the
// iteration ceiling then aborts it).
type Rotator struct {
	store         ObjectStore
	maxIterations int
}

// NewRotator builds a rotator. maxIterations <= 0 selects
// DefaultMaxIterations.
func NewRotator(store ObjectStore, maxIterations int) *Rotator {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Rotator{store: store, maxIterations: maxIterations}
}

type folderAge struct {
	folder  string
	objects []Object
	oldest  Object
}

// Maintain deletes the oldest snapshot folders under prefix until at
// most limit remain. Folder age is the last-modified timestamp of the
// folder's oldest object; ties fall back to listing order. A folder is
// deleted whole: snapshots are write-once, delete-whole.
func (r *Rotator) Maintain(ctx context.Context, prefix string, limit int) error {
	folders, err := r.listFolders(ctx, prefix)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return nil
	}

	iterations := 0
	for len(folders) > limit {
		iterations++
		if iterations > r.maxIterations {
			return &ErrRotationStuck{Prefix: prefix, Iterations: r.maxIterations}
		}

		ages := make([]folderAge, 0, len(folders))
		for _, folder := range folders {
			contents, err := r.store.List(ctx, folder, "")
			if err != nil {
				return fmt.Errorf("failed to list archive folder %q: %w", folder, err)
			}
			if len(contents.Objects) == 0 {
				return &ErrCorruptArchive{Folder: folder}
			}
			oldest := contents.Objects[0]
			for _, obj := range contents.Objects[1:] {
				if obj.LastModified.Before(oldest.LastModified) {
					oldest = obj
				}
			}
			ages = append(ages, folderAge{folder: folder, objects: contents.Objects, oldest: oldest})
		}

		sort.SliceStable(ages, func(i, j int) bool {
			return ages[i].oldest.LastModified.Before(ages[j].oldest.LastModified)
		})
		victim := ages[0]

		log.Printf("INFO: Archive folder count %d exceeds limit %d, deleting oldest folder %q.", len(folders), limit, victim.folder)
		for _, obj := range victim.objects {
			if err := r.store.Delete(ctx, obj.Key); err != nil {
				return &ErrUpload{Key: obj.Key, Op: "delete", Err: err}
			}
		}

		folders, err = r.listFolders(ctx, prefix)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Rotator) listFolders(ctx context.Context, prefix string) ([]string, error) {
	listing, err := r.store.List(ctx, prefix, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to list archive folders under %q: %w", prefix, err)
	}
	return listing.CommonPrefixes, nil
}
