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

// Package archive ships extraction results to an object store: one
// continuously overwritten active file for downstream reporting, plus
// timestamped snapshot folders bounded by a retention limit.
package archive

import (
	"context"
	"time"
)

// Object is one stored object as reported by a listing.
type Object struct {
	Key          string
	LastModified time.Time
}

// Listing is the result of a prefix list. CommonPrefixes is only
// populated when a delimiter was given.
type Listing struct {
	Objects        []Object
	CommonPrefixes []string
}

// ObjectStore is the storage capability the archive layer needs. All
// calls are blocking; the archive layer never retries.
type ObjectStore interface {
	List(ctx context.Context, prefix, delimiter string) (*Listing, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
}
