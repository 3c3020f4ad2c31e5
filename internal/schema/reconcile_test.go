package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/seojinpark/safemap-cli/internal/schema"
	"github.com/seojinpark/safemap-cli/internal/table"
)

func TestReconcileRenamesColumns(t *testing.T) {
	src := &table.Table{
		Columns: []string{"실제_구_이름", "발생건수", "비고"},
		Rows:    [][]string{{"강남구", "10", "x"}},
	}
	out, err := schema.Reconcile(src, map[string]string{
		schema.FieldRegion: "실제_구_이름",
		schema.FieldCount:  "발생건수",
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !out.HasColumn(schema.FieldRegion) || !out.HasColumn(schema.FieldCount) {
		t.Fatalf("canonical columns missing: %v", out.Columns)
	}
	if !out.HasColumn("비고") {
		t.Fatalf("unmapped column should keep its label: %v", out.Columns)
	}
	if src.Columns[0] != "실제_구_이름" {
		t.Fatalf("input table was mutated: %v", src.Columns)
	}
	if got := out.Cell(0, schema.FieldRegion); got != "강남구" {
		t.Fatalf("cell = %q, want 강남구", got)
	}
}

func TestReconcileReportsEveryMissingField(t *testing.T) {
	src := &table.Table{Columns: []string{"a"}, Rows: nil}
	_, err := schema.Reconcile(src, map[string]string{
		schema.FieldRegion: "no_such_region",
		schema.FieldCount:  "no_such_count",
		"kept":             "a",
	})
	if err == nil {
		t.Fatalf("expected schema error")
	}
	var se *schema.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(se.Missing) != 2 {
		t.Fatalf("missing = %v, want both unmapped fields", se.Missing)
	}
	if se.Missing[0] != schema.FieldCount || se.Missing[1] != schema.FieldRegion {
		t.Fatalf("missing should list canonical names sorted: %v", se.Missing)
	}
	if !strings.Contains(se.Error(), schema.FieldRegion) {
		t.Fatalf("error should name missing fields: %v", se)
	}
}

func TestMeltRowCountLaw(t *testing.T) {
	// R rows, K non-identifier columns => exactly R*K output rows, one per
	// (row, column) pair.
	src := &table.Table{
		Columns: []string{schema.FieldCategoryMajor, schema.FieldCategoryMinor, "강남구", "노원구", "마포구"},
		Rows: [][]string{
			{"절도", "침입절도", "10", "5", "2"},
			{"강력범죄", "상해", "3", "7", "0"},
		},
	}
	out, err := schema.Melt(src,
		[]string{schema.FieldCategoryMajor, schema.FieldCategoryMinor},
		schema.FieldRegion, schema.FieldCount)
	if err != nil {
		t.Fatalf("melt: %v", err)
	}
	if got, want := len(out.Rows), 2*3; got != want {
		t.Fatalf("rows = %d, want %d", got, want)
	}

	type key struct{ major, minor, region string }
	seen := make(map[key]string)
	for i := range out.Rows {
		k := key{
			major:  out.Cell(i, schema.FieldCategoryMajor),
			minor:  out.Cell(i, schema.FieldCategoryMinor),
			region: out.Cell(i, schema.FieldRegion),
		}
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate output row for %v", k)
		}
		seen[k] = out.Cell(i, schema.FieldCount)
	}
	if seen[key{"절도", "침입절도", "노원구"}] != "5" {
		t.Fatalf("cell mapping wrong: %v", seen)
	}
	if seen[key{"강력범죄", "상해", "마포구"}] != "0" {
		t.Fatalf("cell mapping wrong: %v", seen)
	}
}

func TestMeltMissingIdentifier(t *testing.T) {
	src := &table.Table{Columns: []string{"only"}, Rows: nil}
	_, err := schema.Melt(src, []string{schema.FieldCategoryMajor, schema.FieldCategoryMinor},
		schema.FieldRegion, schema.FieldCount)
	var se *schema.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
}

func TestMeltNoValueColumns(t *testing.T) {
	// Degenerate wide table with nothing to unpivot: zero output rows.
	src := &table.Table{
		Columns: []string{schema.FieldCategoryMajor, schema.FieldCategoryMinor},
		Rows:    [][]string{{"절도", "침입절도"}},
	}
	out, err := schema.Melt(src,
		[]string{schema.FieldCategoryMajor, schema.FieldCategoryMinor},
		schema.FieldRegion, schema.FieldCount)
	if err != nil {
		t.Fatalf("melt: %v", err)
	}
	if len(out.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(out.Rows))
	}
}
