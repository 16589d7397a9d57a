package storage

import (
	"fmt"

	"github.com/maypok86/otter"
)

// MaxFileIndexCacheWeight bounds the in-process FileIndex cache so a large
// repeated-search workload doesn't re-read unchanged on-disk JSON.
const MaxFileIndexCacheWeight = 64 << 20 // 64 MiB

type cacheKey struct {
	moduleID string
	path     string
}

// CachedStore wraps a Store with an in-process LRU of loaded FileIndex
// documents, keyed by (moduleId, filepath).
type CachedStore struct {
	*Store
	cache otter.Cache[cacheKey, FileIndex]
}

// NewCachedStore builds a CachedStore rooted at indexDir.
func NewCachedStore(indexDir string) (*CachedStore, error) {
	store, err := NewStore(indexDir)
	if err != nil {
		return nil, err
	}
	cache, err := otter.MustBuilder[cacheKey, FileIndex](MaxFileIndexCacheWeight).
		Cost(func(k cacheKey, v FileIndex) uint32 {
			n := len(v.FilePath)
			for _, c := range v.Chunks {
				n += len(c.Content)
			}
			return uint32(n)
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("raggrep: build file index cache: %w", err)
	}
	return &CachedStore{Store: store, cache: cache}, nil
}

// LoadFileIndex returns the cached FileIndex if present, otherwise reads
// through to the underlying Store and populates the cache.
func (c *CachedStore) LoadFileIndex(moduleID, relFilePath string) (FileIndex, bool, error) {
	key := cacheKey{moduleID: moduleID, path: relFilePath}
	if v, ok := c.cache.Get(key); ok {
		return v, true, nil
	}
	idx, ok, err := c.Store.LoadFileIndex(moduleID, relFilePath)
	if err != nil || !ok {
		return idx, ok, err
	}
	c.cache.Set(key, idx)
	return idx, true, nil
}

// SaveFileIndex writes through the underlying Store and invalidates the
// cached entry so the next read observes fresh content.
func (c *CachedStore) SaveFileIndex(moduleID, relFilePath string, idx FileIndex) error {
	if err := c.Store.SaveFileIndex(moduleID, relFilePath, idx); err != nil {
		return err
	}
	c.cache.Delete(cacheKey{moduleID: moduleID, path: relFilePath})
	return nil
}

// Invalidate drops a cached entry, used when a file is removed.
func (c *CachedStore) Invalidate(moduleID, relFilePath string) {
	c.cache.Delete(cacheKey{moduleID: moduleID, path: relFilePath})
}

// Close releases cache resources.
func (c *CachedStore) Close() {
	c.cache.Close()
}
