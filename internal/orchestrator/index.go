package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/raggrep/raggrep/internal/chunk"
	"github.com/raggrep/raggrep/internal/module"
	"github.com/raggrep/raggrep/internal/storage"
	"github.com/raggrep/raggrep/internal/symbols"
)

// Index runs one indexing batch over rootDir for this module: discover
// files, run each through Scanning→Chunked→Indexed→Persisted, then commit
// the manifest. Per-file errors move that file to Failed, are logged and
// counted, and never abort the batch; the manifest write is the commit
// point.
//
// onProgress, if given, is called once before the batch starts (done=0) and
// once after every file is processed (success or failure), reporting
// done/total discovered files; callers use it to drive a progress bar. At
// most one callback is used.
func (e *Engine) Index(ctx context.Context, rootDir string, extensions, ignorePaths []string, chunkOpts map[string]chunk.Options, onProgress ...func(done, total int)) (IndexResult, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	var progress func(done, total int)
	if len(onProgress) > 0 {
		progress = onProgress[0]
	}

	runID := uuid.NewString()
	result := IndexResult{ModuleID: e.ModuleID, Failures: map[string]string{}}

	files, err := discoverFiles(rootDir, extensions, ignorePaths)
	if err != nil {
		return result, fmt.Errorf("raggrep: discover files: %w", err)
	}

	manifest, _, err := e.Store.LoadModuleManifest(e.ModuleID)
	if err != nil {
		return result, fmt.Errorf("raggrep: load module manifest: %w", err)
	}
	if manifest.Files == nil {
		manifest = storage.ModuleManifest{ModuleID: e.ModuleID, Version: "1.0.0", Files: map[string]storage.FileManifestEntry{}}
	}

	e.Log.Info("run %s: indexing %d discovered files for module %s", runID, len(files), e.ModuleID)
	if progress != nil {
		progress(0, len(files))
	}

	for i, rel := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		state := StateScanning
		if err := e.indexOneFile(rootDir, rel, chunkOpts, manifest); err != nil {
			state = StateFailed
			result.Errors++
			result.Failures[rel] = err.Error()
			e.Log.Warn("run %s: %s failed at %s: %v", runID, rel, state, err)
			if progress != nil {
				progress(i+1, len(files))
			}
			continue
		}
		result.Indexed++
		if progress != nil {
			progress(i+1, len(files))
		}
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

func (e *Engine) indexOneFile(rootDir, rel string, chunkOpts map[string]chunk.Options, manifest storage.ModuleManifest) error {
	absPath := filepath.Join(rootDir, rel)
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	content := string(raw)
	hash := e.hashFile(rel, raw, info)

	opts := chunkOpts[filepath.Ext(rel)]
	if opts == (chunk.Options{}) {
		opts = chunk.CoreOptions()
	}

	syms := symbols.Extract(rel, content)
	chunks := chunk.ChunkFile(rel, content, syms, opts)

	mod := e.moduleFor(rel)
	if err := mod.IndexFile(rel, content, chunks); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	docs := make([]storage.ChunkDoc, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, storage.ChunkDoc{
			ChunkID: c.ChunkID, FilePath: c.FilePath, StartLine: c.StartLine,
			EndLine: c.EndLine, Content: c.Content, ChunkType: string(c.ChunkType),
			Name: c.Name, IsExported: c.IsExported,
		})
	}

	fileIdx := storage.FileIndex{
		FilePath:     rel,
		LastModified: info.ModTime().UTC().Format("2006-01-02T15:04:05Z07:00"),
		Chunks:       docs,
	}
	if err := e.Store.SaveFileIndex(e.ModuleID, rel, fileIdx); err != nil {
		return fmt.Errorf("persist file index: %w", err)
	}

	manifest.Files[rel] = storage.FileManifestEntry{
		LastModified: fileIdx.LastModified,
		ChunkCount:   len(chunks),
		ContentHash:  hash,
	}
	return nil
}

// moduleFor picks the most specific registered module that claims rel's
// extension, falling back to core.
func (e *Engine) moduleFor(rel string) *module.ContentModule {
	ext := filepath.Ext(rel)
	var core *module.ContentModule
	for _, m := range e.Modules.All() {
		cm, ok := m.(*module.ContentModule)
		if !ok {
			continue
		}
		if cm.Kind() == module.KindCore {
			core = cm
			continue
		}
		if cm.Claims(ext) {
			return cm
		}
	}
	return core
}

func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// hashFile consults the hash cache before re-hashing raw bytes, and
// records the result back into it. With a nil HashCache it always hashes.
func (e *Engine) hashFile(rel string, raw []byte, info os.FileInfo) string {
	if e.HashCache == nil {
		return contentHash(raw)
	}
	if cached, ok, err := e.HashCache.Lookup(e.ModuleID, rel, info.ModTime(), info.Size()); err == nil && ok {
		return cached
	}
	hash := contentHash(raw)
	if err := e.HashCache.Store(e.ModuleID, rel, info.ModTime(), info.Size(), hash); err != nil {
		e.Log.Warn("hash cache store failed for %s: %v", rel, err)
	}
	return hash
}
