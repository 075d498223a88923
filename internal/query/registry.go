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

import "sort"

// Registry maps reporting project names to their database project ids.
// It is plain configuration data passed in by the caller; the compiler
// holds no process-wide project state.
type Registry map[string]int

// Resolve looks up the project id for a name.
func (r Registry) Resolve(name string) (int, error) {
	id, ok := r[name]
	if !ok {
		return 0, configErr(StageProject, "project %q is not in the project registry; check the name or update the registry", name)
	}
	return id, nil
}

// Names returns the registered project names, sorted, for error output
// and CLI help.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
