// Package chunk produces overlapping line-based chunks from raw file
// content, tiling a file into `block` chunks or collapsing it into a
// single `file` chunk when short enough.
package chunk

import (
	"strings"

	"github.com/raggrep/raggrep/internal/chunktype"
	"github.com/raggrep/raggrep/internal/symbols"
)

// Options configures chunk sizing: 50/10 for source code, 30/5 for
// generic text, by default.
type Options struct {
	ChunkSize int
	Overlap   int
}

// CoreOptions returns the default chunking parameters for source code.
func CoreOptions() Options { return Options{ChunkSize: 50, Overlap: 10} }

// TextOptions returns the default chunking parameters for generic text
// (docs/markdown).
func TextOptions() Options { return Options{ChunkSize: 30, Overlap: 5} }

// ChunkFile splits filepath's content into chunks. When a block chunk spans
// one or more symbol definition lines, its name/type/isExported are taken
// from the first symbol (by line, ties broken by order of discovery) whose
// line falls inside the chunk's range.
func ChunkFile(filepath, content string, syms []symbols.Symbol, opts Options) []chunktype.Chunk {
	lines := strings.Split(content, "\n")
	// A trailing empty element from a final "\n" does not count as a line.
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}
	n := len(lines)
	if n == 0 {
		return nil
	}

	if n <= opts.ChunkSize {
		return []chunktype.Chunk{
			{
				ChunkID:   chunktype.ID(filepath, 1, n),
				FilePath:  filepath,
				StartLine: 1,
				EndLine:   n,
				Content:   strings.Join(lines, "\n"),
				ChunkType: chunktype.TypeFile,
			},
		}
	}

	stride := opts.ChunkSize - opts.Overlap
	if stride <= 0 {
		stride = opts.ChunkSize
	}

	var chunks []chunktype.Chunk
	for start := 1; start <= n; start += stride {
		end := start + opts.ChunkSize - 1
		if end > n {
			end = n
		}

		c := chunktype.Chunk{
			ChunkID:   chunktype.ID(filepath, start, end),
			FilePath:  filepath,
			StartLine: start,
			EndLine:   end,
			Content:   strings.Join(lines[start-1:end], "\n"),
			ChunkType: chunktype.TypeBlock,
		}

		if sym := symbolForRange(syms, start, end); sym != nil {
			c.Name = sym.Name
			c.ChunkType = typeFromKind(sym.Kind)
			c.IsExported = sym.IsExported
		}

		chunks = append(chunks, c)

		if end == n {
			break
		}
	}

	return chunks
}

// symbolForRange returns the symbol whose line falls inside [start,end]
// with the smallest line number; ties are broken by first discovery.
func symbolForRange(syms []symbols.Symbol, start, end int) *symbols.Symbol {
	var best *symbols.Symbol
	for i := range syms {
		s := &syms[i]
		if s.Line < start || s.Line > end {
			continue
		}
		if best == nil || s.Line < best.Line {
			best = s
		}
	}
	return best
}

func typeFromKind(k symbols.Kind) chunktype.Type {
	switch k {
	case symbols.KindFunction, symbols.KindMethod:
		return chunktype.TypeFunction
	case symbols.KindClass:
		return chunktype.TypeClass
	case symbols.KindInterface:
		return chunktype.TypeInterface
	case symbols.KindType:
		return chunktype.TypeTypeAlias
	case symbols.KindEnum:
		return chunktype.TypeEnum
	case symbols.KindVariable:
		return chunktype.TypeVariable
	default:
		return chunktype.TypeBlock
	}
}
