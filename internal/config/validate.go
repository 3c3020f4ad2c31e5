package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the configuration before any pipeline run, so a
// misconfigured column mapping fails loudly at startup instead of as a
// confusing schema error mid-run.
func (c *Pipeline) Validate() error {
	var problems []string
	if c.CrimeFile == "" {
		problems = append(problems, "crime_file is empty")
	}
	if c.GeoFile == "" {
		problems = append(problems, "geo_file is empty")
	}

	required := []string{"category_major", "category_minor"}
	if !c.WideLayout {
		required = append(required, "region", "count")
	}
	for _, k := range missingKeys(c.CrimeColumns, required) {
		problems = append(problems, fmt.Sprintf("crime_columns.%s is not mapped", k))
	}
	for _, k := range missingKeys(c.GeoColumns, []string{"region", "latitude", "longitude"}) {
		problems = append(problems, fmt.Sprintf("geo_columns.%s is not mapped", k))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func missingKeys(m map[string]string, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if m[k] == "" {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}
