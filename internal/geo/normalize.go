// Package geo normalizes region keys and reduces the coordinate reference
// table to one representative centroid per region.
package geo

import (
	"strings"

	"github.com/seojinpark/safemap-cli/internal/table"
)

// NormalizeKey canonicalizes a region key: trim surrounding whitespace,
// remove every occurrence of the jurisdiction prefix substring, trim
// again. The same function must run over both the crime table and the
// coordinate table; normalizing only one side silently breaks the join.
// Idempotent: a normalized key passes through unchanged.
func NormalizeKey(s, prefix string) string {
	s = strings.TrimSpace(s)
	if prefix != "" {
		s = strings.ReplaceAll(s, prefix, "")
	}
	return strings.TrimSpace(s)
}

// NormalizeColumn returns a new table with every value of the named column
// normalized. Absent columns leave the table unchanged (a copy is still
// returned; the input is never edited).
func NormalizeColumn(t *table.Table, col, prefix string) *table.Table {
	out := t.Clone()
	i := out.ColumnIndex(col)
	if i < 0 {
		return out
	}
	for _, row := range out.Rows {
		if i < len(row) {
			row[i] = NormalizeKey(row[i], prefix)
		}
	}
	return out
}
