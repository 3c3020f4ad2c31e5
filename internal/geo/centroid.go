package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seojinpark/safemap-cli/internal/schema"
	"github.com/seojinpark/safemap-cli/internal/table"
)

// Centroid is the representative coordinate for one region: the
// arithmetic mean over all raw samples that survived jurisdiction
// filtering. Region keys are unique across a centroid set.
type Centroid struct {
	Region    string
	Latitude  float64
	Longitude float64
	Samples   int
}

// CentroidOptions controls jurisdiction scoping and key normalization.
type CentroidOptions struct {
	// Jurisdiction is the target literal, e.g. "서울". Rows whose
	// jurisdiction field does not match are discarded.
	Jurisdiction string
	// Exact selects equality matching; false matches by substring, since
	// some sources carry the long form ("서울특별시").
	Exact bool
	// Prefix is stripped from region keys via NormalizeKey.
	Prefix string
}

// Centroids reduces a reconciled coordinate table to one centroid per
// region. A missing jurisdiction column is not an error: the table is
// treated as already jurisdiction-scoped and a warning is returned for the
// caller to surface. Regions with no surviving samples are simply absent.
func Centroids(t *table.Table, opt CentroidOptions) (map[string]Centroid, []string) {
	var warnings []string

	ri := t.ColumnIndex(schema.FieldRegion)
	lati := t.ColumnIndex(schema.FieldLatitude)
	loni := t.ColumnIndex(schema.FieldLongitude)
	if ri < 0 || lati < 0 || loni < 0 {
		warnings = append(warnings, "coordinate table lacks region/latitude/longitude columns; no centroids computed")
		return map[string]Centroid{}, warnings
	}

	ji := t.ColumnIndex(schema.FieldJurisdiction)
	if ji < 0 && opt.Jurisdiction != "" {
		warnings = append(warnings, "jurisdiction column missing; treating coordinate table as already scoped to "+opt.Jurisdiction)
	}

	type acc struct {
		sumLat, sumLon float64
		n              int
	}
	accs := make(map[string]*acc)
	skipped := 0
	for i := range t.Rows {
		if ji >= 0 && opt.Jurisdiction != "" && !matches(cell(t, i, ji), opt.Jurisdiction, opt.Exact) {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(cell(t, i, lati)), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(cell(t, i, loni)), 64)
		if err1 != nil || err2 != nil {
			// A zero-substituted coordinate would poison the mean, so bad
			// samples are excluded rather than coerced.
			skipped++
			continue
		}
		region := NormalizeKey(cell(t, i, ri), opt.Prefix)
		if region == "" {
			skipped++
			continue
		}
		a := accs[region]
		if a == nil {
			a = &acc{}
			accs[region] = a
		}
		a.sumLat += lat
		a.sumLon += lon
		a.n++
	}
	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("skipped %d coordinate rows with unparsable values", skipped))
	}

	out := make(map[string]Centroid, len(accs))
	for region, a := range accs {
		out[region] = Centroid{
			Region:    region,
			Latitude:  a.sumLat / float64(a.n),
			Longitude: a.sumLon / float64(a.n),
			Samples:   a.n,
		}
	}
	return out, warnings
}

func matches(value, target string, exact bool) bool {
	value = strings.TrimSpace(value)
	if exact {
		return value == target
	}
	return strings.Contains(value, target)
}

func cell(t *table.Table, row, col int) string {
	if col < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
