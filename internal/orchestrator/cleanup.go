package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raggrep/raggrep/internal/chunktype"
)

// Cleanup runs the staleness sweep standalone, using the same rule Search
// runs under ensureFresh:
// compare each manifest entry against on-disk stat.mtime and contentHash;
// re-index modified files; remove manifest entries (and their BM25/literal
// postings) for files no longer on disk.
func (e *Engine) Cleanup(rootDir string, extensions, ignorePaths []string) (CleanupResult, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	result := CleanupResult{ModuleID: e.ModuleID}

	manifest, ok, err := e.Store.LoadModuleManifest(e.ModuleID)
	if err != nil {
		return result, fmt.Errorf("raggrep: load module manifest: %w", err)
	}
	if !ok || manifest.Files == nil {
		return result, nil
	}

	for rel, entry := range manifest.Files {
		absPath := filepath.Join(rootDir, rel)
		info, statErr := os.Stat(absPath)

		if statErr != nil {
			e.removeFile(rel)
			delete(manifest.Files, rel)
			result.Removed++
			continue
		}

		var hash string
		var haveHash bool
		if e.HashCache != nil {
			if cached, ok, err := e.HashCache.Lookup(e.ModuleID, rel, info.ModTime(), info.Size()); err == nil && ok {
				hash, haveHash = cached, true
			}
		}
		if !haveHash {
			raw, readErr := os.ReadFile(absPath)
			if readErr != nil {
				e.removeFile(rel)
				delete(manifest.Files, rel)
				result.Removed++
				continue
			}
			hash = e.hashFile(rel, raw, info)
		}

		if entry.ContentHash != "" && hash == entry.ContentHash {
			result.Kept++
			continue
		}

		if err := e.indexOneFile(rootDir, rel, nil, manifest); err != nil {
			e.Log.Warn("cleanup: re-index %s failed: %v", rel, err)
			continue
		}
		result.Kept++
	}

	manifest.LastUpdated = nowISO()
	if err := e.Store.SaveModuleManifest(manifest); err != nil {
		return result, fmt.Errorf("raggrep: commit manifest: %w", err)
	}
	if err := e.persist(); err != nil {
		return result, fmt.Errorf("raggrep: persist indexes: %w", err)
	}

	return result, nil
}

// removeFile drops a file's BM25 document, literal entries, and cached
// FileIndex.
func (e *Engine) removeFile(rel string) {
	e.BM25.RemoveDocument(chunktype.SanitizePath(rel))
	e.Literal.RemoveFile(rel)
	e.Store.Invalidate(e.ModuleID, rel)
	_ = e.Store.DeleteFileIndex(e.ModuleID, rel)
	if e.HashCache != nil {
		_ = e.HashCache.Forget(e.ModuleID, rel)
	}
}
