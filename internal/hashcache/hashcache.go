// Package hashcache is a disposable, local cache of (path, mtime, size) ->
// SHA-256 content hash, backed by SQLite. It is a performance aid for the
// staleness sweep only: the manifest/FileIndex JSON tree in internal/storage
// remains the sole source of truth.
package hashcache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache wraps a *sql.DB against a single SQLite file.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS file_hashes (
	path TEXT NOT NULL,
	module_id TEXT NOT NULL,
	mtime INTEGER NOT NULL,
	size INTEGER NOT NULL,
	content_hash TEXT NOT NULL,
	PRIMARY KEY (module_id, path)
);
`

// Open creates/opens the cache database at dbPath.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("raggrep: open hash cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("raggrep: create hash cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached content hash for (moduleID, path) if mtime and
// size match exactly what was last stored; otherwise ok is false, meaning
// the caller must re-hash the file's bytes.
func (c *Cache) Lookup(moduleID, path string, mtime time.Time, size int64) (hash string, ok bool, err error) {
	row := c.db.QueryRow(
		`SELECT content_hash FROM file_hashes WHERE module_id = ? AND path = ? AND mtime = ? AND size = ?`,
		moduleID, path, mtime.UnixNano(), size,
	)
	var h string
	switch err := row.Scan(&h); err {
	case nil:
		return h, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("raggrep: hash cache lookup: %w", err)
	}
}

// Store records the content hash observed for (moduleID, path, mtime, size).
func (c *Cache) Store(moduleID, path string, mtime time.Time, size int64, hash string) error {
	_, err := c.db.Exec(
		`INSERT INTO file_hashes (path, module_id, mtime, size, content_hash) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(module_id, path) DO UPDATE SET mtime=excluded.mtime, size=excluded.size, content_hash=excluded.content_hash`,
		path, moduleID, mtime.UnixNano(), size, hash,
	)
	if err != nil {
		return fmt.Errorf("raggrep: hash cache store: %w", err)
	}
	return nil
}

// Forget removes a (moduleID, path) entry, called when a file is removed
// from the tree.
func (c *Cache) Forget(moduleID, path string) error {
	_, err := c.db.Exec(`DELETE FROM file_hashes WHERE module_id = ? AND path = ?`, moduleID, path)
	if err != nil {
		return fmt.Errorf("raggrep: hash cache forget: %w", err)
	}
	return nil
}
