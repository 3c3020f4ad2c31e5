// Package schema reconciles source-specific column labels onto the
// canonical field names the rest of the pipeline works with, and reshapes
// wide crime tables (one column per region) into long form.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seojinpark/safemap-cli/internal/table"
)

// Canonical field names. Source files map onto these via the configured
// {canonical: source_label} pairs; logic never mentions source labels.
const (
	FieldRegion        = "region"
	FieldCategoryMajor = "category_major"
	FieldCategoryMinor = "category_minor"
	FieldCount         = "count"
	FieldPopulation    = "population"
	FieldJurisdiction  = "jurisdiction"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
)

// SchemaError reports every canonical field whose configured source label
// is absent from the table, not just the first.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: required columns missing: %s", strings.Join(e.Missing, ", "))
}

// Reconcile returns a new table in which each source label named by
// mapping is replaced with its canonical field name. Unmapped columns keep
// their original labels. Fails with *SchemaError when any mapped source
// label is not present.
func Reconcile(t *table.Table, mapping map[string]string) (*table.Table, error) {
	canonicals := make([]string, 0, len(mapping))
	for c := range mapping {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	var missing []string
	for _, c := range canonicals {
		if mapping[c] == "" || !t.HasColumn(mapping[c]) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	bySource := make(map[string]string, len(mapping))
	for c, label := range mapping {
		bySource[label] = c
	}
	out := t.Clone()
	for i, label := range out.Columns {
		if canonical, ok := bySource[label]; ok {
			out.Columns[i] = canonical
		}
	}
	return out, nil
}

// Melt unpivots a wide table into long form. The idVars columns are
// carried through unchanged; every other column fans out to one row per
// (input row, column) pair, with the former column label under keyName and
// the former cell value under valueName. An input of R rows and K
// non-identifier columns yields exactly R*K rows; nothing is dropped or
// merged here.
func Melt(t *table.Table, idVars []string, keyName, valueName string) (*table.Table, error) {
	idIdx := make([]int, len(idVars))
	var missing []string
	for i, v := range idVars {
		idx := t.ColumnIndex(v)
		if idx < 0 {
			missing = append(missing, v)
		}
		idIdx[i] = idx
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	idSet := make(map[int]bool, len(idIdx))
	for _, idx := range idIdx {
		idSet[idx] = true
	}
	var valueIdx []int
	for i := range t.Columns {
		if !idSet[i] {
			valueIdx = append(valueIdx, i)
		}
	}

	cols := append(append([]string{}, idVars...), keyName, valueName)
	rows := make([][]string, 0, len(t.Rows)*len(valueIdx))
	for _, r := range t.Rows {
		for _, vi := range valueIdx {
			row := make([]string, 0, len(cols))
			for _, ii := range idIdx {
				row = append(row, cellAt(r, ii))
			}
			row = append(row, t.Columns[vi], cellAt(r, vi))
			rows = append(rows, row)
		}
	}
	return &table.Table{Columns: cols, Rows: rows}, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
