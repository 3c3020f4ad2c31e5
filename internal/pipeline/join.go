package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/seojinpark/safemap-cli/internal/geo"
	"github.com/seojinpark/safemap-cli/internal/schema"
	"github.com/seojinpark/safemap-cli/internal/table"
)

// JoinedRecord is one canonical crime record that acquired coordinates.
// Records that fail to match a centroid never appear; the pipeline fails
// closed on unmatched geography instead of carrying null coordinates.
type JoinedRecord struct {
	Region        string
	CategoryMajor string
	CategoryMinor string
	Count         float64
	Population    float64
	Latitude      float64
	Longitude     float64
}

// Join left-joins a canonical, key-normalized crime table onto the
// centroid set by exact region-key equality. Unmatched rows are dropped
// and their region keys returned sorted for diagnosis. Count and
// population use parse-or-zero coercion: a bad number becomes 0, never a
// missing value and never a dropped row.
func Join(crime *table.Table, centroids map[string]geo.Centroid) (records []JoinedRecord, dropped []string) {
	ri := crime.ColumnIndex(schema.FieldRegion)
	maji := crime.ColumnIndex(schema.FieldCategoryMajor)
	mini := crime.ColumnIndex(schema.FieldCategoryMinor)
	cnti := crime.ColumnIndex(schema.FieldCount)
	popi := crime.ColumnIndex(schema.FieldPopulation) // optional

	droppedSet := make(map[string]bool)
	for _, row := range crime.Rows {
		region := at(row, ri)
		c, ok := centroids[region]
		if !ok {
			droppedSet[region] = true
			continue
		}
		rec := JoinedRecord{
			Region:        region,
			CategoryMajor: at(row, maji),
			CategoryMinor: at(row, mini),
			Count:         parseOrZero(at(row, cnti)),
			Latitude:      c.Latitude,
			Longitude:     c.Longitude,
		}
		if popi >= 0 {
			rec.Population = parseOrZero(at(row, popi))
		}
		records = append(records, rec)
	}
	for region := range droppedSet {
		dropped = append(dropped, region)
	}
	sort.Strings(dropped)
	return records, dropped
}

// parseOrZero coerces a cell to a number, treating thousands separators
// as noise. Unparsable or empty values become 0.
func parseOrZero(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
