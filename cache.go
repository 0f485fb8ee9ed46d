package typescope

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the session cache. One entry per file is small
// (symbols only, no source text), so a few hundred files cover a typical
// editing session.
const DefaultCacheSize = 256

// extractionCache memoizes per-file extraction results for the lifetime of
// one Engine. It only ever spans an in-memory session: nothing is persisted
// across runs, and a fresh Engine starts cold.
type extractionCache struct {
	entries *lru.Cache[string, *FileExtraction]
}

func newExtractionCache(size int) (*extractionCache, error) {
	entries, err := lru.New[string, *FileExtraction](size)
	if err != nil {
		return nil, err
	}
	return &extractionCache{entries: entries}, nil
}

func (c *extractionCache) get(path string) (*FileExtraction, bool) {
	if c == nil {
		return nil, false
	}
	return c.entries.Get(path)
}

func (c *extractionCache) add(path string, fe *FileExtraction) {
	if c == nil {
		return
	}
	c.entries.Add(path, fe)
}

// invalidate drops one file, typically because a watcher saw it change.
func (c *extractionCache) invalidate(path string) {
	if c == nil {
		return
	}
	c.entries.Remove(path)
}

// purge drops everything; used when the caller cannot tell what changed.
func (c *extractionCache) purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
