package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"github.com/raggrep/raggrep/internal/bm25"
	"github.com/raggrep/raggrep/internal/hashcache"
	"github.com/raggrep/raggrep/internal/literal"
	"github.com/raggrep/raggrep/internal/module"
	"github.com/raggrep/raggrep/internal/rlog"
	"github.com/raggrep/raggrep/internal/storage"
)

// Engine owns one module's mutable indexing state: the in-memory BM25 and
// literal indexes, the module registry, and the storage handle. Index
// writes are serialized per module via writeMu; search reads the in-memory
// state without locking, against an immutable in-memory snapshot.
type Engine struct {
	ModuleID string
	Store    *storage.CachedStore
	Log      *rlog.Logger

	// HashCache short-circuits re-hashing unchanged files during the
	// staleness sweep. Nil is valid: every file is then re-hashed from its
	// bytes on each sweep.
	HashCache *hashcache.Cache

	writeMu sync.Mutex

	BM25    *bm25.Index
	Literal *literal.Index
	Modules *module.Registry
}

// Open loads (or initializes) one module's engine state from the store.
// hc may be nil.
func Open(store *storage.CachedStore, moduleID string, logger *rlog.Logger, hc *hashcache.Cache) (*Engine, error) {
	e := &Engine{ModuleID: moduleID, Store: store, Log: logger, HashCache: hc}

	if raw, ok, err := store.LoadBM25Snapshot(moduleID); err != nil {
		return nil, fmt.Errorf("raggrep: load bm25 snapshot: %w", err)
	} else if ok {
		idx, err := bm25.Deserialize(raw)
		if err != nil {
			e.Log.Warn("module %s: corrupt bm25 snapshot, rebuilding: %v", moduleID, err)
			e.BM25 = bm25.New(bm25.DefaultConfig())
		} else {
			e.BM25 = idx
		}
	} else {
		e.BM25 = bm25.New(bm25.DefaultConfig())
	}

	if raw, ok, err := store.LoadLiteralSnapshot(moduleID); err != nil {
		return nil, fmt.Errorf("raggrep: load literal snapshot: %w", err)
	} else if ok {
		idx, err := literal.Deserialize(raw)
		if err != nil {
			e.Log.Warn("module %s: corrupt literal snapshot, rebuilding: %v", moduleID, err)
			e.Literal = literal.New()
		} else {
			e.Literal = idx
		}
	} else {
		e.Literal = literal.New()
	}

	e.Modules = module.NewRegistry()
	e.Modules.Register(module.NewCoreModule(e.BM25, e.Literal))
	e.Modules.Register(module.NewTypeScriptModule(e.BM25, e.Literal))
	e.Modules.Register(module.NewJSONModule(e.BM25, e.Literal))
	e.Modules.Register(module.NewMarkdownModule(e.BM25, e.Literal))

	return e, nil
}

// persist snapshots the BM25 and literal indexes to disk. Callers must
// hold writeMu.
func (e *Engine) persist() error {
	raw, err := e.BM25.Serialize()
	if err != nil {
		return fmt.Errorf("raggrep: serialize bm25: %w", err)
	}
	if err := e.Store.SaveBM25Snapshot(e.ModuleID, raw); err != nil {
		return err
	}

	raw, err = e.Literal.Serialize()
	if err != nil {
		return fmt.Errorf("raggrep: serialize literal index: %w", err)
	}
	return e.Store.SaveLiteralSnapshot(e.ModuleID, raw)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
