// Package pipeline wires the transformation stages into one run:
// load → reconcile → normalize → centroid → join. Each stage owns its
// output; nothing mutates a table produced upstream.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/seojinpark/safemap-cli/internal/config"
	"github.com/seojinpark/safemap-cli/internal/geo"
	"github.com/seojinpark/safemap-cli/internal/schema"
	"github.com/seojinpark/safemap-cli/internal/table"
)

// Result is one pipeline run: the joined record set plus everything an
// analyst needs to diagnose it. Dropped regions are surfaced here rather
// than swallowed; an empty Records with a fatal load error never reaches
// this type (Run returns the error instead).
type Result struct {
	RunID          string
	Records        []JoinedRecord
	Centroids      map[string]geo.Centroid
	CrimeRows      int
	DroppedRegions []string
	Warnings       []string
}

// Regions returns the distinct region keys present in the joined set,
// sorted, for the control surface's region selector.
func (r *Result) Regions() []string {
	seen := make(map[string]bool)
	for _, rec := range r.Records {
		seen[rec.Region] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Runner executes pipeline runs against one configuration, reusing parsed
// tables across runs through the load cache. Runs are synchronous and
// serialized by the caller.
type Runner struct {
	cfg   *config.Pipeline
	cache *table.Cache
}

// New returns a Runner for the given validated configuration.
func New(cfg *config.Pipeline) *Runner {
	return &Runner{cfg: cfg, cache: table.NewCache()}
}

// Run executes one full pipeline pass. Loading and schema errors are
// fatal for the run; join gaps are not, and land in Result.DroppedRegions.
func (r *Runner) Run() (*Result, error) {
	res := &Result{RunID: uuid.NewString()}

	crimeRaw, err := r.cache.Load(r.cfg.CrimeFile, r.cfg.Encodings)
	if err != nil {
		return nil, fmt.Errorf("load crime table: %w", err)
	}
	geoRaw, err := r.cache.Load(r.cfg.GeoFile, r.cfg.Encodings)
	if err != nil {
		return nil, fmt.Errorf("load coordinate table: %w", err)
	}

	crime, err := r.reconcileCrime(crimeRaw)
	if err != nil {
		return nil, fmt.Errorf("reconcile crime table: %w", err)
	}
	res.CrimeRows = len(crime.Rows)

	geoTable, err := r.reconcileGeo(geoRaw)
	if err != nil {
		return nil, fmt.Errorf("reconcile coordinate table: %w", err)
	}

	// The same normalization runs over both tables: the crime table's
	// region column here, the coordinate table's keys inside Centroids.
	crime = geo.NormalizeColumn(crime, schema.FieldRegion, r.cfg.RegionPrefix)

	centroids, warnings := geo.Centroids(geoTable, geo.CentroidOptions{
		Jurisdiction: r.cfg.Jurisdiction,
		Exact:        r.cfg.JurisdictionExact,
		Prefix:       r.cfg.RegionPrefix,
	})
	res.Warnings = append(res.Warnings, warnings...)
	res.Centroids = centroids

	res.Records, res.DroppedRegions = Join(crime, centroids)
	if n := len(res.DroppedRegions); n > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d region(s) failed to acquire coordinates and were dropped", n))
	}
	return res, nil
}

// reconcileCrime renames crime columns to canonical fields and, for wide
// layouts, unpivots region columns into long form.
func (r *Runner) reconcileCrime(t *table.Table) (*table.Table, error) {
	if r.cfg.WideLayout {
		mapping := pick(r.cfg.CrimeColumns, schema.FieldCategoryMajor, schema.FieldCategoryMinor)
		out, err := schema.Reconcile(t, mapping)
		if err != nil {
			return nil, err
		}
		return schema.Melt(out,
			[]string{schema.FieldCategoryMajor, schema.FieldCategoryMinor},
			schema.FieldRegion, schema.FieldCount)
	}
	mapping := pick(r.cfg.CrimeColumns,
		schema.FieldRegion, schema.FieldCategoryMajor, schema.FieldCategoryMinor, schema.FieldCount)
	// Population is optional in long layouts; map it only when the source
	// actually carries the configured label.
	if label, ok := r.cfg.CrimeColumns[schema.FieldPopulation]; ok && t.HasColumn(label) {
		mapping[schema.FieldPopulation] = label
	}
	return schema.Reconcile(t, mapping)
}

// reconcileGeo renames coordinate columns. The jurisdiction column is
// optional by contract: when its source label is absent the table is
// treated as pre-scoped and Centroids emits the warning.
func (r *Runner) reconcileGeo(t *table.Table) (*table.Table, error) {
	mapping := pick(r.cfg.GeoColumns,
		schema.FieldRegion, schema.FieldLatitude, schema.FieldLongitude)
	if label, ok := r.cfg.GeoColumns[schema.FieldJurisdiction]; ok && t.HasColumn(label) {
		mapping[schema.FieldJurisdiction] = label
	}
	return schema.Reconcile(t, mapping)
}

// pick copies the named keys from m, keeping absent keys absent so
// Reconcile reports them as missing canonical fields.
func pick(m map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		} else {
			// Force a SchemaError naming the unconfigured field.
			out[k] = ""
		}
	}
	return out
}
