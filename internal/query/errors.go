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
package query

import "fmt"

// Compilation stages reported by ErrConfiguration so a caller can tell
// which part of the package definition is broken.
const (
	StagePackage = "package"
	StageProject = "project lookup"
	StageFields  = "field extraction"
	StageJoins   = "join construction"
	StageFilter  = "project filter"
	StageOrder   = "ordering"
)

// ErrConfiguration represents a bad or incomplete package definition.
type ErrConfiguration struct {
	Stage string
	Msg   string
	Err   error
}

func (e *ErrConfiguration) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Stage, e.Msg, e.Err)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Stage, e.Msg)
}

func (e *ErrConfiguration) Unwrap() error {
	return e.Err
}

func configErr(stage, format string, args ...interface{}) *ErrConfiguration {
	return &ErrConfiguration{Stage: stage, Msg: fmt.Sprintf(format, args...)}
}
