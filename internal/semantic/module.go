// Package semantic implements the external "semantic track" collaborator:
// a vector-search IndexModule variant whose only contract obligation is
// that Search returns (chunkId, score) pairs.
package semantic

import (
	"context"
	"fmt"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/raggrep/raggrep/internal/chunktype"
	"github.com/raggrep/raggrep/internal/module"
)

// Module is the semantic/vector IndexModule, backed by chromem-go.
type Module struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	embedder   Embedder
}

// New creates a semantic Module persisting its vector store under dir (an
// empty dir means in-memory only).
func New(dir string, embedder Embedder) (*Module, error) {
	if embedder == nil {
		embedder = NewHashEmbedder(256)
	}

	var db *chromem.DB
	var err error
	if dir == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dir, false)
		if err != nil {
			return nil, fmt.Errorf("raggrep: open semantic store: %w", err)
		}
	}

	embedFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	}

	collection, err := db.CreateCollection("raggrep", nil, embedFunc)
	if err != nil {
		return nil, fmt.Errorf("raggrep: create semantic collection: %w", err)
	}

	return &Module{db: db, collection: collection, embedder: embedder}, nil
}

func (m *Module) Kind() module.Kind { return module.KindSemanticVector }

// IndexFile adds/updates one document per chunk, keyed by chunkId.
func (m *Module) IndexFile(_, _ string, chunks []chunktype.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range chunks {
		doc := chromem.Document{
			ID:      c.ChunkID,
			Content: c.Content,
			Metadata: map[string]string{
				"filepath":  c.FilePath,
				"chunkType": string(c.ChunkType),
			},
		}
		if err := m.collection.AddDocument(context.Background(), doc); err != nil {
			return fmt.Errorf("raggrep: semantic index %s: %w", c.ChunkID, err)
		}
	}
	return nil
}

// Finalize is a no-op: chromem-go persists per-document writes, there is
// no batch commit step to run here.
func (m *Module) Finalize() error { return nil }

// Search returns the topK nearest chunks by cosine similarity.
func (m *Module) Search(query string, topK int) ([]module.ScoredChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.collection.Count() == 0 {
		return nil, nil
	}
	n := topK
	if n > m.collection.Count() {
		n = m.collection.Count()
	}
	if n <= 0 {
		return nil, nil
	}

	results, err := m.collection.Query(context.Background(), query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("raggrep: semantic query: %w", err)
	}

	out := make([]module.ScoredChunk, 0, len(results))
	for _, r := range results {
		out = append(out, module.ScoredChunk{ChunkID: r.ID, Score: float64(r.Similarity)})
	}
	return out, nil
}

// Dispose releases the underlying database's resources. chromem-go has no
// explicit close; removing the in-memory collection is sufficient.
func (m *Module) Dispose() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db.DeleteCollection("raggrep")
}
