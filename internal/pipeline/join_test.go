package pipeline

import (
	"testing"

	"github.com/seojinpark/safemap-cli/internal/geo"
	"github.com/seojinpark/safemap-cli/internal/table"
)

func TestJoinDropsUnmatchedRegions(t *testing.T) {
	crime := &table.Table{
		Columns: []string{"region", "category_major", "category_minor", "count"},
		Rows: [][]string{
			{"강남구", "절도", "침입절도", "10"},
			{"유령구", "절도", "침입절도", "4"},
			{"노원구", "절도", "침입절도", "5"},
		},
	}
	centroids := map[string]geo.Centroid{
		"강남구": {Region: "강남구", Latitude: 37.51, Longitude: 127.01},
		"노원구": {Region: "노원구", Latitude: 37.65, Longitude: 127.06},
	}
	records, dropped := Join(crime, centroids)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	// Every surviving record must carry a valid coordinate pair.
	for _, r := range records {
		if r.Latitude == 0 || r.Longitude == 0 {
			t.Fatalf("record %s has no coordinates: %+v", r.Region, r)
		}
	}
	if len(dropped) != 1 || dropped[0] != "유령구" {
		t.Fatalf("dropped = %v, want [유령구]", dropped)
	}
}

func TestJoinParseOrZeroCounts(t *testing.T) {
	crime := &table.Table{
		Columns: []string{"region", "category_major", "category_minor", "count"},
		Rows: [][]string{
			{"강남구", "절도", "침입절도", "1,234"},
			{"강남구", "절도", "소매치기", "abc"},
			{"강남구", "절도", "날치기", ""},
		},
	}
	centroids := map[string]geo.Centroid{
		"강남구": {Region: "강남구", Latitude: 37.51, Longitude: 127.01},
	}
	records, dropped := Join(crime, centroids)
	if len(dropped) != 0 {
		t.Fatalf("bad counts must never drop rows, dropped = %v", dropped)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0].Count != 1234 {
		t.Fatalf("thousands separator: count = %v, want 1234", records[0].Count)
	}
	if records[1].Count != 0 || records[2].Count != 0 {
		t.Fatalf("unparsable counts must coerce to zero: %v, %v", records[1].Count, records[2].Count)
	}
}

func TestJoinOptionalPopulation(t *testing.T) {
	crime := &table.Table{
		Columns: []string{"region", "category_major", "category_minor", "count", "population"},
		Rows:    [][]string{{"강남구", "절도", "침입절도", "10", "530000"}},
	}
	centroids := map[string]geo.Centroid{
		"강남구": {Region: "강남구", Latitude: 37.51, Longitude: 127.01},
	}
	records, _ := Join(crime, centroids)
	if records[0].Population != 530000 {
		t.Fatalf("population = %v, want 530000", records[0].Population)
	}
}
