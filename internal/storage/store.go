package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raggrep/raggrep/internal/rerr"
)

// Store is the whole-file-replacement, fail-closed reader/writer for the
// on-disk index tree: writes are whole-file replacements, and readers fail
// closed (report absent, not error) on parse errors and any missing file.
type Store struct {
	Layout Layout
}

// NewStore opens a Store rooted at indexDir, creating the directory tree
// if absent.
func NewStore(indexDir string) (*Store, error) {
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "create index dir", err)
	}
	return &Store{Layout: NewLayout(indexDir)}, nil
}

// writeJSON marshals v and replaces path atomically: write to a sibling
// temp file, then rename (POSIX rename is atomic within a filesystem).
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("create dir for %s", path), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("marshal %s", path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("write temp %s", tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("rename %s", tmp), err)
	}
	return nil
}

// readJSON unmarshals path into v. It reports ok=false (not an error) when
// the file is missing or unparsable, per the fail-closed reader contract.
func readJSON(path string, v any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, rerr.Wrap(rerr.KindIO, fmt.Sprintf("read %s", path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil // corruption is treated as not-present
	}
	return true, nil
}

// SaveGlobalManifest writes the GlobalManifest.
func (s *Store) SaveGlobalManifest(m GlobalManifest) error {
	return writeJSON(s.Layout.GlobalManifestPath(), m)
}

// LoadGlobalManifest returns (manifest, true, nil) if present and valid,
// or (zero, false, nil) if absent/corrupt.
func (s *Store) LoadGlobalManifest() (GlobalManifest, bool, error) {
	var m GlobalManifest
	ok, err := readJSON(s.Layout.GlobalManifestPath(), &m)
	return m, ok, err
}

// SaveModuleManifest writes a ModuleManifest; this is the indexing commit
// point.
func (s *Store) SaveModuleManifest(m ModuleManifest) error {
	return writeJSON(s.Layout.ModuleManifestPath(m.ModuleID), m)
}

// LoadModuleManifest loads one module's manifest.
func (s *Store) LoadModuleManifest(moduleID string) (ModuleManifest, bool, error) {
	var m ModuleManifest
	ok, err := readJSON(s.Layout.ModuleManifestPath(moduleID), &m)
	return m, ok, err
}

// SaveFileIndex writes the FileIndex for one file inside a module.
func (s *Store) SaveFileIndex(moduleID, relFilePath string, idx FileIndex) error {
	return writeJSON(s.Layout.FileIndexPath(moduleID, relFilePath), idx)
}

// LoadFileIndex loads the FileIndex for one file inside a module.
func (s *Store) LoadFileIndex(moduleID, relFilePath string) (FileIndex, bool, error) {
	var idx FileIndex
	ok, err := readJSON(s.Layout.FileIndexPath(moduleID, relFilePath), &idx)
	return idx, ok, err
}

// DeleteFileIndex removes a file's persisted index, ignoring a missing file.
func (s *Store) DeleteFileIndex(moduleID, relFilePath string) error {
	err := os.Remove(s.Layout.FileIndexPath(moduleID, relFilePath))
	if err != nil && !os.IsNotExist(err) {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("delete file index %s", relFilePath), err)
	}
	return nil
}

// SaveBM25Snapshot writes the raw BM25 index blob (bm25.Index.Serialize
// output) to symbolic/_meta.json.
func (s *Store) SaveBM25Snapshot(moduleID string, raw []byte) error {
	return writeRaw(s.Layout.BM25MetaPath(moduleID), raw)
}

// LoadBM25Snapshot loads the raw BM25 index blob, or ok=false if absent.
func (s *Store) LoadBM25Snapshot(moduleID string) ([]byte, bool, error) {
	return readRaw(s.Layout.BM25MetaPath(moduleID))
}

// SaveLiteralSnapshot writes the raw literal index blob (literal.Index.
// Serialize output) to literals/_index.json.
func (s *Store) SaveLiteralSnapshot(moduleID string, raw []byte) error {
	return writeRaw(s.Layout.LiteralIndexPath(moduleID), raw)
}

// LoadLiteralSnapshot loads the raw literal index blob, or ok=false if
// absent.
func (s *Store) LoadLiteralSnapshot(moduleID string) ([]byte, bool, error) {
	return readRaw(s.Layout.LiteralIndexPath(moduleID))
}

func writeRaw(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("create dir for %s", path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("write temp %s", tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return rerr.Wrap(rerr.KindIO, fmt.Sprintf("rename %s", tmp), err)
	}
	return nil
}

func readRaw(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, rerr.Wrap(rerr.KindIO, fmt.Sprintf("read %s", path), err)
	}
	return data, true, nil
}
