// Package module implements the polymorphic IndexModule capability: a
// tagged set of indexing/search variants dispatched through one interface,
// never through open subclassing.
package module

import "github.com/raggrep/raggrep/internal/chunktype"

// Kind tags which concrete variant an IndexModule is.
type Kind string

const (
	KindCore           Kind = "core"
	KindLanguageTS      Kind = "language/typescript"
	KindDataJSON        Kind = "data/json"
	KindDocsMarkdown    Kind = "docs/markdown"
	KindSemanticVector  Kind = "semantic/vector"
)

// ScoredChunk is the minimal shape an external collaborator (the semantic
// track) contributes: a chunk identity plus a score.
type ScoredChunk struct {
	ChunkID string
	Score   float64
}

// IndexModule is the capability set every module variant implements.
type IndexModule interface {
	Kind() Kind

	// IndexFile processes one file during indexing: its full content (used
	// for the per-file BM25 document) and its chunks (used for literal
	// extraction and, for the semantic variant, per-chunk vectors).
	IndexFile(filepath, content string, chunks []chunktype.Chunk) error

	// Finalize is called once after a batch completes, before the
	// manifest commit point.
	Finalize() error

	// Search returns this module's contribution for a query, as
	// (chunkId, score) pairs. Core/BM25-backed modules may return nil
	// here since their results flow through the scorer directly; this
	// entry point exists for external collaborators such as the
	// semantic track.
	Search(query string, topK int) ([]ScoredChunk, error)

	// Dispose releases any resources (file handles, DB connections).
	Dispose() error
}

// Registry holds the enabled modules for one indexing module/collection,
// keyed by Kind.
type Registry struct {
	modules map[Kind]IndexModule
	order   []Kind
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[Kind]IndexModule)}
}

// Register adds m to the registry, keyed by its own Kind.
func (r *Registry) Register(m IndexModule) {
	k := m.Kind()
	if _, exists := r.modules[k]; !exists {
		r.order = append(r.order, k)
	}
	r.modules[k] = m
}

// Get returns the module registered under kind, if any.
func (r *Registry) Get(kind Kind) (IndexModule, bool) {
	m, ok := r.modules[kind]
	return m, ok
}

// All returns every registered module in registration order.
func (r *Registry) All() []IndexModule {
	out := make([]IndexModule, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.modules[k])
	}
	return out
}

// DisposeAll disposes every registered module, collecting the first error.
func (r *Registry) DisposeAll() error {
	var firstErr error
	for _, m := range r.All() {
		if err := m.Dispose(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
