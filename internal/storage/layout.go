package storage

import "path/filepath"

// DefaultIndexDir is the default name of the persisted index root.
const DefaultIndexDir = ".raggrep"

// Layout resolves the paths of every file in the on-disk index tree
// rooted at indexDir.
type Layout struct {
	IndexDir string
}

// NewLayout builds a Layout rooted at indexDir.
func NewLayout(indexDir string) Layout {
	return Layout{IndexDir: indexDir}
}

// ConfigPath is <indexDir>/config.json.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.IndexDir, "config.json")
}

// GlobalManifestPath is <indexDir>/manifest.json.
func (l Layout) GlobalManifestPath() string {
	return filepath.Join(l.IndexDir, "manifest.json")
}

// ModuleDir is <indexDir>/index/<moduleId>/.
func (l Layout) ModuleDir(moduleID string) string {
	return filepath.Join(l.IndexDir, "index", moduleID)
}

// ModuleManifestPath is <indexDir>/index/<moduleId>/manifest.json.
func (l Layout) ModuleManifestPath(moduleID string) string {
	return filepath.Join(l.ModuleDir(moduleID), "manifest.json")
}

// BM25MetaPath is <indexDir>/index/<moduleId>/symbolic/_meta.json.
func (l Layout) BM25MetaPath(moduleID string) string {
	return filepath.Join(l.ModuleDir(moduleID), "symbolic", "_meta.json")
}

// FileSummaryPath is <indexDir>/index/<moduleId>/symbolic/<filepath>.json.
func (l Layout) FileSummaryPath(moduleID, relFilePath string) string {
	return filepath.Join(l.ModuleDir(moduleID), "symbolic", relFilePath+".json")
}

// LiteralIndexPath is <indexDir>/index/<moduleId>/literals/_index.json.
func (l Layout) LiteralIndexPath(moduleID string) string {
	return filepath.Join(l.ModuleDir(moduleID), "literals", "_index.json")
}

// FileIndexPath is <indexDir>/index/<moduleId>/<filepath>.json.
func (l Layout) FileIndexPath(moduleID, relFilePath string) string {
	return filepath.Join(l.ModuleDir(moduleID), relFilePath+".json")
}
