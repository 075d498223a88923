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

import "fmt"

// ErrCorruptArchive reports a snapshot folder with no contents; every
// snapshot must hold at least its own folder marker, so an empty one is
// a fatal inconsistency.
type ErrCorruptArchive struct {
	Folder string
}

func (e *ErrCorruptArchive) Error() string {
	return fmt.Sprintf("corrupt archive: no contents found in folder %q", e.Folder)
}

// ErrRotationStuck reports that rotation hit its iteration ceiling
// without converging, e.g. a listing that never reflects deletions.
type ErrRotationStuck struct {
	Prefix     string
	Iterations int
}

func (e *ErrRotationStuck) Error() string {
	return fmt.Sprintf("archive rotation stuck after %d iteration(s) under %q; rotation aborted until resolved", e.Iterations, e.Prefix)
}

// ErrUpload represents a failed put or delete, tagged with the key it
// was aimed at.
type ErrUpload struct {
	Key string
	Op  string
	Err error
}

func (e *ErrUpload) Error() string {
	return fmt.Sprintf("object store %s failed for %q: %v", e.Op, e.Key, e.Err)
}

func (e *ErrUpload) Unwrap() error {
	return e.Err
}
