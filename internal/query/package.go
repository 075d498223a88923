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

// Package is the compiled form of one extract definition. It is built
// either from a Source plus join list (New) or from a literal SQL string
// with an explicit schema (NewLiteral), never both. Query and schema are
// compiled once at construction and immutable afterwards.
type Package struct {
	source *Source
	joins  []JoinItem

	query  string
	schema []string
}

// Option adjusts package construction.
type Option func(*options)

type options struct {
	exclude []string
}

// WithExclude removes the named output fields from the expected schema.
// The select list is not touched; excluded columns still come back from
// the database, they are just not required to.
func WithExclude(fields ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, fields...)
	}
}

// New compiles a package from a source descriptor and its join list.
func New(source Source, joins []JoinItem, opts ...Option) (*Package, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateSource(&source); err != nil {
		return nil, err
	}
	if err := validateJoins(&source, joins); err != nil {
		return nil, err
	}

	schema, err := buildSchema(&source, joins, o.exclude)
	if err != nil {
		return nil, err
	}
	sql, err := buildQuery(&source, joins)
	if err != nil {
		return nil, err
	}

	return &Package{
		source: &source,
		joins:  joins,
		query:  sql,
		schema: schema,
	}, nil
}

// NewLiteral wraps a pre-built SQL statement. The expected schema cannot
// be derived from a literal query, so it must be supplied explicitly.
func NewLiteral(sql string, schema []string, opts ...Option) (*Package, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if sql == "" {
		return nil, configErr(StagePackage, "literal query is empty")
	}
	if len(schema) == 0 {
		return nil, configErr(StagePackage, "literal query requires an explicit schema")
	}
	return &Package{
		query:  sql,
		schema: filterSchema(schema, o.exclude),
	}, nil
}

// Query returns the compiled SQL statement.
func (p *Package) Query() string {
	return p.query
}

// Schema returns the expected output column names in select order.
func (p *Package) Schema() []string {
	out := make([]string, len(p.schema))
	copy(out, p.schema)
	return out
}

// Literal reports whether the package wraps a pre-built query rather
// than a compiled descriptor.
func (p *Package) Literal() bool {
	return p.source == nil
}

func validateSource(source *Source) error {
	if source.Table == "" {
		return configErr(StageFields, "source table name is missing")
	}
	if source.Alias == "" {
		return configErr(StageFields, "source alias is missing")
	}
	if len(source.Fields) == 0 {
		return configErr(StageFields, "source %q declares no fields", source.Table)
	}
	for _, f := range source.Fields {
		if f.Column == "" || f.Output == "" {
			return configErr(StageFields, "source %q has an incomplete field mapping", source.Table)
		}
	}
	if source.ProjectID == 0 {
		return configErr(StageFilter, "source %q has no project filter", source.Table)
	}
	if source.OrderBy == "" {
		return configErr(StageOrder, "source %q has no order column", source.Table)
	}
	return nil
}

func validateJoins(source *Source, joins []JoinItem) error {
	seen := map[string]bool{source.Alias: true}
	for i, item := range joins {
		if item.Name == "" {
			return configErr(StageJoins, "join item %d has no alias", i)
		}
		if seen[item.Name] {
			return configErr(StageJoins, "join alias %q is not unique", item.Name)
		}
		seen[item.Name] = true
		if item.AnswerTable == "" {
			return configErr(StageJoins, "join item %q has no answer table", item.Name)
		}
		if item.QuestionID <= 0 {
			return configErr(StageJoins, "join item %q has no question id", item.Name)
		}
		switch item.Cardinality {
		case Single, Repeating:
		default:
			return configErr(StageJoins, "join item %q has unknown cardinality %q", item.Name, item.Cardinality)
		}
		if len(item.Fields) == 0 {
			return configErr(StageFields, "join item %q declares no fields", item.Name)
		}
		for _, f := range item.Fields {
			if f.Column == "" || f.Output == "" {
				return configErr(StageFields, "join item %q has an incomplete field mapping", item.Name)
			}
		}
	}
	return nil
}
