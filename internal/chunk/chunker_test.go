package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raggrep/raggrep/internal/symbols"
)

// Test Plan for chunk:
// - Every line 1..N appears in at least one chunk's [startLine, endLine]
// - A file shorter than the chunk size collapses to a single "file" chunk
// - Overlap produces consecutive chunks with shared line ranges
// - symbolForRange picks the smallest line, breaking ties by discovery order

func linesContent(n int) string {
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestChunkFile_CoversEveryLine(t *testing.T) {
	t.Parallel()

	content := linesContent(137)
	chunks := ChunkFile("big.go", content, nil, CoreOptions())
	require.NotEmpty(t, chunks)

	covered := make(map[int]bool, 137)
	for _, c := range chunks {
		for l := c.StartLine; l <= c.EndLine; l++ {
			covered[l] = true
		}
	}
	for l := 1; l <= 137; l++ {
		assert.True(t, covered[l], "line %d not covered by any chunk", l)
	}
}

func TestChunkFile_ShortFileIsSingleFileChunk(t *testing.T) {
	t.Parallel()

	content := linesContent(10)
	chunks := ChunkFile("small.go", content, nil, CoreOptions())
	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].StartLine)
	assert.Equal(t, 10, chunks[0].EndLine)
}

func TestChunkFile_OverlapBetweenConsecutiveChunks(t *testing.T) {
	t.Parallel()

	opts := Options{ChunkSize: 50, Overlap: 10}
	content := linesContent(120)
	chunks := ChunkFile("big.go", content, nil, opts)
	require.GreaterOrEqual(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		assert.LessOrEqual(t, cur.StartLine, prev.EndLine+1, "chunk %d should overlap or abut chunk %d", i, i-1)
	}
}

func TestChunkFile_EmptyContentProducesNoChunks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ChunkFile("empty.go", "", nil, CoreOptions()))
}

func TestSymbolForRange_SmallestLineWins(t *testing.T) {
	t.Parallel()

	syms := []symbols.Symbol{
		{Name: "Later", Kind: symbols.KindFunction, Line: 40},
		{Name: "Earlier", Kind: symbols.KindFunction, Line: 10},
	}
	got := symbolForRange(syms, 1, 50)
	require.NotNil(t, got)
	assert.Equal(t, "Earlier", got.Name)
}

func TestSymbolForRange_TieBrokenByDiscoveryOrder(t *testing.T) {
	t.Parallel()

	syms := []symbols.Symbol{
		{Name: "First", Kind: symbols.KindFunction, Line: 5},
		{Name: "Second", Kind: symbols.KindFunction, Line: 5},
	}
	got := symbolForRange(syms, 1, 50)
	require.NotNil(t, got)
	assert.Equal(t, "First", got.Name)
}

func TestSymbolForRange_NoSymbolInRange(t *testing.T) {
	t.Parallel()

	syms := []symbols.Symbol{{Name: "Outside", Kind: symbols.KindFunction, Line: 100}}
	assert.Nil(t, symbolForRange(syms, 1, 50))
}

func TestChunkFile_BlockChunkTakesNameFromEnclosingSymbol(t *testing.T) {
	t.Parallel()

	content := linesContent(120)
	syms := []symbols.Symbol{{Name: "DoWork", Kind: symbols.KindFunction, Line: 5, IsExported: true}}
	chunks := ChunkFile("big.go", content, syms, CoreOptions())
	require.NotEmpty(t, chunks)
	assert.Equal(t, "DoWork", chunks[0].Name)
	assert.True(t, chunks[0].IsExported)
}
