package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for literal serialization:
// - Serialize/Deserialize round-trips matches and vocabulary-word lookups

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	t.Parallel()

	idx := New()
	idx.AddLiterals("chunk1", "a.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchDefinition, Vocabulary: []string{"auth", "service"}},
	})
	idx.AddLiterals("chunk2", "b.go", []ExtractedLiteral{
		{Value: "AuthService", Type: TypeClassName, MatchType: MatchReference, Vocabulary: []string{"auth", "service"}},
	})

	data, err := idx.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)

	matches := restored.FindMatches([]string{"AuthService"})
	assert.Len(t, matches, 2)

	wordMatches := restored.FindByVocabularyWords([]string{"auth"})
	assert.Len(t, wordMatches, 2)
}

func TestDeserialize_SkipsEntriesMissingRequiredFields(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"version":"1.1.0","entries":{"authservice":[{"chunkId":"","filepath":"a.go","originalCasing":"","type":"className","matchType":"definition","vocabulary":["auth"]}]}}`)
	restored, err := Deserialize(raw)
	require.NoError(t, err)
	assert.Empty(t, restored.FindMatches([]string{"authservice"}))
}
