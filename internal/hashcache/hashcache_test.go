package hashcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for hashcache:
// - Lookup misses until Store records the (mtime, size) pair
// - Lookup misses again once mtime or size changes
// - Forget removes the entry

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "hashes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_LookupMissesBeforeStore(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime := time.Unix(1700000000, 0)

	_, ok, err := c.Lookup("core", "a.go", mtime, 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_StoreThenLookupHits(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime := time.Unix(1700000000, 0)

	require.NoError(t, c.Store("core", "a.go", mtime, 100, "deadbeef"))

	hash, ok, err := c.Lookup("core", "a.go", mtime, 100)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "deadbeef", hash)
}

func TestCache_LookupMissesWhenSizeChanges(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime := time.Unix(1700000000, 0)

	require.NoError(t, c.Store("core", "a.go", mtime, 100, "deadbeef"))

	_, ok, err := c.Lookup("core", "a.go", mtime, 101)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_StoreOverwritesOnConflict(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime1 := time.Unix(1700000000, 0)
	mtime2 := time.Unix(1700000100, 0)

	require.NoError(t, c.Store("core", "a.go", mtime1, 100, "old-hash"))
	require.NoError(t, c.Store("core", "a.go", mtime2, 200, "new-hash"))

	_, ok, err := c.Lookup("core", "a.go", mtime1, 100)
	require.NoError(t, err)
	assert.False(t, ok, "stale (mtime, size) pair should no longer hit")

	hash, ok, err := c.Lookup("core", "a.go", mtime2, 200)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new-hash", hash)
}

func TestCache_Forget_RemovesEntry(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime := time.Unix(1700000000, 0)

	require.NoError(t, c.Store("core", "a.go", mtime, 100, "deadbeef"))
	require.NoError(t, c.Forget("core", "a.go"))

	_, ok, err := c.Lookup("core", "a.go", mtime, 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ScopedPerModule(t *testing.T) {
	t.Parallel()

	c := openTestCache(t)
	mtime := time.Unix(1700000000, 0)

	require.NoError(t, c.Store("core", "a.go", mtime, 100, "core-hash"))
	require.NoError(t, c.Store("typescript", "a.go", mtime, 100, "ts-hash"))

	hash, ok, err := c.Lookup("core", "a.go", mtime, 100)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "core-hash", hash)

	hash, ok, err = c.Lookup("typescript", "a.go", mtime, 100)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ts-hash", hash)
}
