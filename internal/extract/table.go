package extract

// Table is the row-oriented result of one extraction run. It is owned
// exclusively by the run that produced it and is never shared across
// concurrent runs.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
