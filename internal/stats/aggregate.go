// Package stats computes the aggregate views the presentation layer
// consumes: by-region totals with share-of-total, per-region category
// breakdowns, and category cross-tabulations.
package stats

import (
	"math"
	"sort"

	"github.com/seojinpark/safemap-cli/internal/pipeline"
)

// Filter restricts the joined record set before aggregation. Zero values
// mean "no restriction". A CountRange with Min == Max is a valid
// degenerate range matching exactly that value.
type Filter struct {
	Region        string
	CategoryMajor string
	CategoryMinor string
	CountRange    *Range
}

// Range is a closed numeric interval.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Apply returns the records matching the filter. The input slice is
// never modified.
func Apply(records []pipeline.JoinedRecord, f Filter) []pipeline.JoinedRecord {
	var out []pipeline.JoinedRecord
	for _, rec := range records {
		if f.Region != "" && rec.Region != f.Region {
			continue
		}
		if f.CategoryMajor != "" && rec.CategoryMajor != f.CategoryMajor {
			continue
		}
		if f.CategoryMinor != "" && rec.CategoryMinor != f.CategoryMinor {
			continue
		}
		if f.CountRange != nil && !f.CountRange.Contains(rec.Count) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// AggregateRow is the per-region summary behind the map view.
type AggregateRow struct {
	Region          string
	TotalCount      float64
	Latitude        float64
	Longitude       float64
	ShareOfTotalPct float64
	Population      float64
	RatePer10k      float64
}

// ByRegion groups the record set by region, summing counts and carrying
// the region's centroid (one per region by construction). Shares are
// percentages of the set-wide total; when the total is zero every share
// is zero rather than a division failure. When any record carries
// population data, rows also expose incidents per 10k residents, with a
// zero population replaced by 1 before dividing. Output is sorted by
// region for determinism.
func ByRegion(records []pipeline.JoinedRecord) []AggregateRow {
	type acc struct {
		total      float64
		lat, lon   float64
		population float64
	}
	accs := make(map[string]*acc)
	hasPopulation := false
	for _, rec := range records {
		a := accs[rec.Region]
		if a == nil {
			a = &acc{lat: rec.Latitude, lon: rec.Longitude}
			accs[rec.Region] = a
		}
		a.total += rec.Count
		if rec.Population > 0 {
			hasPopulation = true
			if a.population == 0 {
				a.population = rec.Population
			}
		}
	}

	var grand float64
	for _, a := range accs {
		grand += a.total
	}

	rows := make([]AggregateRow, 0, len(accs))
	for region, a := range accs {
		row := AggregateRow{
			Region:     region,
			TotalCount: a.total,
			Latitude:   a.lat,
			Longitude:  a.lon,
			Population: a.population,
		}
		if grand > 0 {
			row.ShareOfTotalPct = a.total / grand * 100
		}
		if hasPopulation {
			denom := a.population
			if denom == 0 {
				denom = 1
			}
			row.RatePer10k = a.total / denom * 10000
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Region < rows[j].Region })
	return rows
}

// CategoryTotal is one major-category total within a region.
type CategoryTotal struct {
	CategoryMajor string
	TotalCount    float64
}

// ByMajorCategory sums counts per major category, scoped to one region.
// Sorted by total descending, then name, for stable display.
func ByMajorCategory(records []pipeline.JoinedRecord, region string) []CategoryTotal {
	sums := make(map[string]float64)
	for _, rec := range records {
		if rec.Region != region {
			continue
		}
		sums[rec.CategoryMajor] += rec.Count
	}
	out := make([]CategoryTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, CategoryTotal{CategoryMajor: k, TotalCount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCount != out[j].TotalCount {
			return out[i].TotalCount > out[j].TotalCount
		}
		return out[i].CategoryMajor < out[j].CategoryMajor
	})
	return out
}

// CrossTab is a major × minor pivot of summed counts for one region.
// Every (major, minor) combination has a cell; absent combinations are 0.
type CrossTab struct {
	Majors []string
	Minors []string
	Cells  [][]int // Cells[i][j] = sum for Majors[i] × Minors[j]
}

// Crosstab pivots one region's records into a major × minor grid with
// integer cells and zero fill.
func Crosstab(records []pipeline.JoinedRecord, region string) *CrossTab {
	sums := make(map[string]map[string]float64)
	minorSet := make(map[string]bool)
	for _, rec := range records {
		if rec.Region != region {
			continue
		}
		m := sums[rec.CategoryMajor]
		if m == nil {
			m = make(map[string]float64)
			sums[rec.CategoryMajor] = m
		}
		m[rec.CategoryMinor] += rec.Count
		minorSet[rec.CategoryMinor] = true
	}

	ct := &CrossTab{}
	for major := range sums {
		ct.Majors = append(ct.Majors, major)
	}
	for minor := range minorSet {
		ct.Minors = append(ct.Minors, minor)
	}
	sort.Strings(ct.Majors)
	sort.Strings(ct.Minors)

	ct.Cells = make([][]int, len(ct.Majors))
	for i, major := range ct.Majors {
		ct.Cells[i] = make([]int, len(ct.Minors))
		for j, minor := range ct.Minors {
			ct.Cells[i][j] = int(math.Round(sums[major][minor]))
		}
	}
	return ct
}

// Extremes selects the maximum- and minimum-total regions for highlight.
// In the degenerate case where the minimum equals the maximum, both rules
// must not fire at once: the minimum highlight is suppressed and minRow is
// nil. Ties resolve to the first region in sorted order.
func Extremes(rows []AggregateRow) (maxRow, minRow *AggregateRow) {
	if len(rows) == 0 {
		return nil, nil
	}
	maxIdx, minIdx := 0, 0
	for i := range rows {
		if rows[i].TotalCount > rows[maxIdx].TotalCount {
			maxIdx = i
		}
		if rows[i].TotalCount < rows[minIdx].TotalCount {
			minIdx = i
		}
	}
	maxRow = &rows[maxIdx]
	if rows[minIdx].TotalCount == rows[maxIdx].TotalCount {
		return maxRow, nil
	}
	return maxRow, &rows[minIdx]
}

// MeanRate is the average per-10k rate across rows, for the summary
// metric shown alongside the table. Zero when no row carries a rate.
func MeanRate(rows []AggregateRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, r := range rows {
		if r.RatePer10k > 0 {
			sum += r.RatePer10k
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
