package bm25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for bm25:
// - AddDocument then RemoveDocument restores N and avgDocLength, prunes postings
// - Search ranks documents with more term overlap higher
// - NormalizeScore maps non-positive raw scores to 0 and is monotonic otherwise
// - Serialize/Deserialize round-trips to identical scores, ignoring stored avgDocLength

func TestIndex_AddThenRemove_RestoresState(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	idx.AddDocument("doc1", []string{"redis", "cache", "client"})

	n0 := idx.N()
	avg0 := idx.AvgDocLength()

	idx.AddDocument("doc2", []string{"redis", "connection", "pool", "manager"})
	require.Equal(t, 2, idx.N())

	idx.RemoveDocument("doc2")

	assert.Equal(t, n0, idx.N())
	assert.InDelta(t, avg0, idx.AvgDocLength(), 1e-9)
}

func TestIndex_RemoveDocument_PrunesEmptyPostings(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	idx.AddDocument("doc1", []string{"uniqueterm"})
	idx.RemoveDocument("doc1")

	results := idx.Search([]string{"uniqueterm"}, 10)
	assert.Empty(t, results)
}

func TestIndex_Search_RanksHigherOverlapFirst(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	idx.AddDocument("low", []string{"redis", "unrelated", "words", "here", "to", "pad", "length"})
	idx.AddDocument("high", []string{"redis", "cache", "client", "redis"})

	results := idx.Search([]string{"redis", "cache", "client"}, 10)
	require.Len(t, results, 2)
	assert.Equal(t, "high", results[0].DocID)
}

func TestIndex_Search_EmptyIndexReturnsNil(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	assert.Empty(t, idx.Search([]string{"anything"}, 10))
}

func TestIndex_NormalizeScore_NonPositiveIsZero(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	assert.Equal(t, 0.0, idx.NormalizeScore(0))
	assert.Equal(t, 0.0, idx.NormalizeScore(-1))
}

func TestIndex_NormalizeScore_MonotonicInRawScore(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	low := idx.NormalizeScore(1.0)
	high := idx.NormalizeScore(5.0)
	assert.Less(t, low, high)
	assert.Less(t, high, 1.0)
}

func TestIndex_SerializeDeserialize_RoundTripsToIdenticalScores(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	idx.AddDocument("a", []string{"authenticate", "user", "session"})
	idx.AddDocument("b", []string{"hash", "password", "salt"})
	idx.AddDocument("c", []string{"authenticate", "token", "refresh"})

	data, err := idx.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)

	for _, query := range [][]string{
		{"authenticate", "user"},
		{"hash", "password"},
		{"token"},
	} {
		want := idx.Search(query, 10)
		got := restored.Search(query, 10)
		require.Equal(t, len(want), len(got))
		for i := range want {
			assert.Equal(t, want[i].DocID, got[i].DocID)
			assert.InDelta(t, want[i].Score, got[i].Score, 1e-9)
		}
	}

	assert.Equal(t, idx.N(), restored.N())
	assert.InDelta(t, idx.AvgDocLength(), restored.AvgDocLength(), 1e-9)
}

func TestIndex_RawScore_UnknownDocIsZero(t *testing.T) {
	t.Parallel()

	idx := New(DefaultConfig())
	idx.AddDocument("a", []string{"foo", "bar"})
	assert.Equal(t, 0.0, idx.RawScore("missing", []string{"foo"}))
}
