// Package session opens everything a command-line or MCP entrypoint needs
// for one project root: configuration, the on-disk store, the hash
// cache, and one orchestrator.Engine per enabled module.
package session

import (
	"fmt"
	"path/filepath"

	"github.com/raggrep/raggrep/internal/config"
	"github.com/raggrep/raggrep/internal/hashcache"
	"github.com/raggrep/raggrep/internal/orchestrator"
	"github.com/raggrep/raggrep/internal/rlog"
	"github.com/raggrep/raggrep/internal/storage"
)

// Project bundles one project's resolved state.
type Project struct {
	RootDir string
	Config  *config.Config
	Store   *storage.CachedStore
	Hashes  *hashcache.Cache
	Log     *rlog.Logger
	Engines map[string]*orchestrator.Engine
}

// Open loads configuration rooted at rootDir and opens every enabled
// module's engine.
func Open(rootDir string) (*Project, error) {
	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return nil, err
	}

	indexDir := cfg.IndexDir
	if indexDir == "" {
		indexDir = config.DefaultIndexDirName
	}
	if !filepath.IsAbs(indexDir) {
		indexDir = filepath.Join(rootDir, indexDir)
	}

	store, err := storage.NewCachedStore(indexDir)
	if err != nil {
		return nil, err
	}

	hashes, err := hashcache.Open(filepath.Join(indexDir, "hashes.db"))
	if err != nil {
		store.Close()
		return nil, err
	}

	logger := rlog.New()

	engines := make(map[string]*orchestrator.Engine, len(cfg.Modules))
	for _, m := range cfg.Modules {
		if !m.Enabled {
			continue
		}
		eng, err := orchestrator.Open(store, m.ID, logger.With("module", m.ID), hashes)
		if err != nil {
			hashes.Close()
			store.Close()
			return nil, fmt.Errorf("raggrep: open module %q: %w", m.ID, err)
		}
		engines[m.ID] = eng
	}

	return &Project{RootDir: rootDir, Config: cfg, Store: store, Hashes: hashes, Log: logger, Engines: engines}, nil
}

// Close releases the store and hash cache handles.
func (p *Project) Close() {
	if p.Hashes != nil {
		p.Hashes.Close()
	}
	if p.Store != nil {
		p.Store.Close()
	}
}
