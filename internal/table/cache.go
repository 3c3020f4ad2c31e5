package table

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache memoizes Load results keyed by file identity (absolute path) and
// state (mtime + size). A changed file invalidates its entry on the next
// Load; nothing is re-read or re-parsed while the file is unchanged.
// Pipeline runs are serialized by the caller, so no locking is needed.
type Cache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	table   *Table
}

// NewCache returns an empty load cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load returns the cached table for path when the file is unchanged, and
// otherwise loads it with the given encoding candidates and replaces the
// entry. Callers must not mutate the returned table.
func (c *Cache) Load(path string, encodings []string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat table: %w", err)
	}
	if e, ok := c.entries[abs]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.table, nil
	}
	t, err := Load(abs, encodings)
	if err != nil {
		return nil, err
	}
	c.entries[abs] = cacheEntry{modTime: info.ModTime(), size: info.Size(), table: t}
	return t, nil
}

// Invalidate drops the entry for path, forcing a re-read on the next Load.
func (c *Cache) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		delete(c.entries, abs)
	}
}
