package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for literal index:
// - AddLiterals upserts by priority: definition beats reference beats import
// - A lower-priority upsert for an existing (chunkId, value) is a no-op
// - RemoveChunk prunes the entry and leaves the vocabulary map consistent
// - FindMatches is exact-match aware; FindByVocabularyWords aggregates per chunk

func TestAddLiterals_HigherPriorityReplacesLower(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchImport, Vocabulary: []string{"auth", "service"}},
	})
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"auth", "service"}},
	})

	matches := idx.FindMatches([]string{"AuthService"})
	require.Len(t, matches, 1)
	assert.Equal(t, MatchDefinition, matches[0].IndexedLiteral.MatchType)
}

func TestAddLiterals_LowerPriorityDoesNotReplace(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"auth", "service"}},
	})
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchImport, Vocabulary: []string{"auth", "service"}},
	})

	matches := idx.FindMatches([]string{"AuthService"})
	require.Len(t, matches, 1)
	assert.Equal(t, MatchDefinition, matches[0].IndexedLiteral.MatchType)
}

func TestFindMatches_ExactMatchFlag(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"auth", "service"}},
	})

	matches := idx.FindMatches([]string{"AuthService"})
	require.Len(t, matches, 1)
	assert.True(t, matches[0].ExactMatch)

	matches = idx.FindMatches([]string{"authservice"})
	require.Len(t, matches, 1)
	assert.False(t, matches[0].ExactMatch)
}

func TestRemoveChunk_PrunesEntriesAndVocabulary(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"auth", "service"}},
	})
	idx.RemoveChunk("chunk1")

	assert.Empty(t, idx.FindMatches([]string{"AuthService"}))
	assert.Empty(t, idx.FindByVocabularyWords([]string{"auth"}))
}

func TestRemoveFile_LeavesOtherFilesIntact(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "Foo", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"foo"}},
	})
	idx.AddLiterals("chunk2", "b.go", []ExtractedLiteral{
		{Value: "Bar", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"bar"}},
	})

	idx.RemoveFile("a.go")

	assert.Empty(t, idx.FindMatches([]string{"Foo"}))
	require.Len(t, idx.FindMatches([]string{"Bar"}), 1)
}

func TestFindByVocabularyWords_AggregatesPerChunk(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "getUserById", Type: TypeFunctionName, MatchType: MatchDefinition, Vocabulary: []string{"get", "user", "by", "id"}},
	})

	matches := idx.FindByVocabularyWords([]string{"get", "user", "nonexistent"})
	require.Len(t, matches, 1)
	assert.Equal(t, "chunk1", matches[0].ChunkID)
	assert.True(t, matches[0].Words["get"])
	assert.True(t, matches[0].Words["user"])
	assert.False(t, matches[0].Words["nonexistent"])
}

func TestMatchTypePriority_DefinitionHighestImportLowest(t *testing.T) {
	t.Parallel()

	assert.Greater(t, MatchDefinition.priority(), MatchReference.priority())
	assert.Greater(t, MatchReference.priority(), MatchImport.priority())
}
