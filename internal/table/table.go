package table

// Table is an ordered tabular snapshot of one delimited source file:
// a header of column labels plus string-valued rows. Tables are treated as
// immutable once built; every transformation stage returns a new Table and
// never edits one it received.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, column label), or "" when the column is
// absent or the row is short.
func (t *Table) Cell(row int, col string) string {
	i := t.ColumnIndex(col)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// Clone returns a deep copy. Stages that rewrite values copy first so the
// input table stays untouched.
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = make([]string, len(r))
		copy(rows[i], r)
	}
	return &Table{Columns: cols, Rows: rows}
}
