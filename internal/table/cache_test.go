package table_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seojinpark/safemap-cli/internal/table"
)

func TestCacheReusesUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crime.csv")
	if err := os.WriteFile(path, []byte("region,count\nA,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := table.NewCache()
	first, err := c.Load(path, nil)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := c.Load(path, nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("expected cache hit to return the same parsed table")
	}
}

func TestCacheInvalidatesOnFileChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crime.csv")
	if err := os.WriteFile(path, []byte("region,count\nA,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := table.NewCache()
	if _, err := c.Load(path, nil); err != nil {
		t.Fatalf("first load: %v", err)
	}

	if err := os.WriteFile(path, []byte("region,count\nB,2\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	// Force a distinct mtime in case the filesystem clock is coarse.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	reloaded, err := c.Load(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Cell(0, "region"); got != "B" {
		t.Fatalf("expected reloaded content, got region %q", got)
	}
}

func TestCacheExplicitInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crime.csv")
	if err := os.WriteFile(path, []byte("region,count\nA,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := table.NewCache()
	first, err := c.Load(path, nil)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	c.Invalidate(path)
	second, err := c.Load(path, nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first == second {
		t.Fatalf("expected a fresh parse after Invalidate")
	}
}
