package module

import (
	"github.com/raggrep/raggrep/internal/bm25"
	"github.com/raggrep/raggrep/internal/chunktype"
	"github.com/raggrep/raggrep/internal/literal"
	"github.com/raggrep/raggrep/internal/symbols"
	"github.com/raggrep/raggrep/internal/vocab"
)

// ContentModule is the IndexModule shared by the {core, language/typescript,
// data/json, docs/markdown} variants: each differs only in which
// extensions it claims and whether symbol extraction applies, not in how
// it drives BM25/literal indexing. Implemented as one tagged struct
// dispatched by Kind, not as open subclassing.
type ContentModule struct {
	kind       Kind
	extensions map[string]bool
	extractSymbols bool

	BM25    *bm25.Index
	Literal *literal.Index
}

// NewCoreModule handles any extension (the catch-all variant).
func NewCoreModule(b *bm25.Index, l *literal.Index) *ContentModule {
	return &ContentModule{kind: KindCore, BM25: b, Literal: l, extractSymbols: true}
}

// NewTypeScriptModule claims TS/JS family extensions.
func NewTypeScriptModule(b *bm25.Index, l *literal.Index) *ContentModule {
	return &ContentModule{
		kind:           KindLanguageTS,
		extensions:     extSet(".ts", ".tsx", ".js", ".jsx"),
		extractSymbols: true,
		BM25:           b,
		Literal:        l,
	}
}

// NewJSONModule claims .json; JSON has no symbols to extract.
func NewJSONModule(b *bm25.Index, l *literal.Index) *ContentModule {
	return &ContentModule{
		kind:           KindDataJSON,
		extensions:     extSet(".json"),
		extractSymbols: false,
		BM25:           b,
		Literal:        l,
	}
}

// NewMarkdownModule claims doc extensions; no symbol extraction.
func NewMarkdownModule(b *bm25.Index, l *literal.Index) *ContentModule {
	return &ContentModule{
		kind:           KindDocsMarkdown,
		extensions:     extSet(".md", ".mdx", ".rst", ".txt"),
		extractSymbols: false,
		BM25:           b,
		Literal:        l,
	}
}

func extSet(exts ...string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

func (c *ContentModule) Kind() Kind { return c.kind }

// Claims reports whether this module owns the given extension. The core
// module (nil extensions set) claims everything.
func (c *ContentModule) Claims(ext string) bool {
	if c.extensions == nil {
		return true
	}
	return c.extensions[ext]
}

// IndexFile adds the whole file as one BM25 document (BM25 is computed per
// file and broadcast to its chunks at score time) and indexes literals per
// chunk.
func (c *ContentModule) IndexFile(filepath, content string, chunks []chunktype.Chunk) error {
	c.BM25.AddDocument(chunktype.SanitizePath(filepath), vocab.Tokenize(content))

	if !c.extractSymbols {
		for _, chunk := range chunks {
			c.Literal.AddLiterals(chunk.ChunkID, chunk.FilePath, literal.ExtractFromChunk(chunk.Content, chunk.StartLine, nil))
		}
		return nil
	}

	for _, chunk := range chunks {
		var syms []symbols.Symbol
		if chunk.Name != "" {
			syms = []symbols.Symbol{{
				Name:       chunk.Name,
				Kind:       kindFromChunkType(chunk.ChunkType),
				Line:       chunk.StartLine,
				IsExported: chunk.IsExported,
			}}
		}
		lits := literal.ExtractFromChunk(chunk.Content, chunk.StartLine, syms)
		c.Literal.AddLiterals(chunk.ChunkID, chunk.FilePath, lits)
	}
	return nil
}

func kindFromChunkType(t chunktype.Type) symbols.Kind {
	switch t {
	case chunktype.TypeFunction:
		return symbols.KindFunction
	case chunktype.TypeClass:
		return symbols.KindClass
	case chunktype.TypeInterface:
		return symbols.KindInterface
	case chunktype.TypeTypeAlias:
		return symbols.KindType
	case chunktype.TypeEnum:
		return symbols.KindEnum
	case chunktype.TypeVariable:
		return symbols.KindVariable
	default:
		return symbols.KindVariable
	}
}

// Finalize has nothing to flush: BM25/literal mutations are applied
// synchronously in IndexFile and persisted by the orchestrator.
func (c *ContentModule) Finalize() error { return nil }

// Search is unused for content modules: their contribution flows through
// the scorer directly via the shared BM25/Literal indexes, not through
// this entry point. Only external collaborators (e.g. the semantic track)
// rely on it.
func (c *ContentModule) Search(_ string, _ int) ([]ScoredChunk, error) { return nil, nil }

func (c *ContentModule) Dispose() error { return nil }
