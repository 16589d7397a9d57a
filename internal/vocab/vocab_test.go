package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for vocab:
// - ExtractVocabulary decomposes camelCase/PascalCase/snake_case/SCREAMING_SNAKE/kebab-case
// - ExtractVocabulary is order-preserving, deduplicated, lowercase-only, length >= 2
// - ExtractQueryVocabulary drops stop words and decomposes identifier-shaped tokens
// - Tokenize drops natural-language stop words and short tokens

func TestExtractVocabulary_CamelCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"get", "http", "client"}, ExtractVocabulary("getHTTPClient"))
}

func TestExtractVocabulary_ScreamingSnakeCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"max", "retry", "count"}, ExtractVocabulary("MAX_RETRY_COUNT"))
}

func TestExtractVocabulary_KebabCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"auth", "service", "url"}, ExtractVocabulary("auth-service-url"))
}

func TestExtractVocabulary_PascalCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"xml", "parser"}, ExtractVocabulary("XMLParser"))
}

func TestExtractVocabulary_DropsShortAndDigitOnlyWords(t *testing.T) {
	t.Parallel()

	// "a" is length 1 (dropped), "2" is all-digit (dropped)
	got := ExtractVocabulary("a_2_userID")
	assert.Equal(t, []string{"user", "id"}, got)
}

func TestExtractVocabulary_DeduplicatesPreservingFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := ExtractVocabulary("getUserGetUser")
	assert.Equal(t, []string{"get", "user"}, got)
}

func TestExtractVocabulary_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ExtractVocabulary(""))
}

func TestExtractVocabulary_AllWordsLowercase(t *testing.T) {
	t.Parallel()

	for _, w := range ExtractVocabulary("HTTPSConnectionPool_v2Helper") {
		assert.Equal(t, w, toLowerASCII(w))
		assert.GreaterOrEqual(t, len(w), 2)
	}
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func TestExtractQueryVocabulary_DropsStopWordsAndDecomposesIdentifiers(t *testing.T) {
	t.Parallel()

	got := ExtractQueryVocabulary("find the getUserById implementation")
	assert.Equal(t, []string{"get", "user", "by", "id"}, got)
}

func TestExtractQueryVocabulary_PlainWordsKeptLowercase(t *testing.T) {
	t.Parallel()

	got := ExtractQueryVocabulary("redis cache")
	assert.Equal(t, []string{"redis", "cache"}, got)
}

func TestTokenize_DropsStopWordsAndShortTokens(t *testing.T) {
	t.Parallel()

	got := Tokenize("The quick brown fox is a fast animal")
	assert.Equal(t, []string{"quick", "brown", "fox", "fast", "animal"}, got)
}

func TestTokenize_Lowercases(t *testing.T) {
	t.Parallel()

	got := Tokenize("Redis CACHE Client")
	assert.Equal(t, []string{"redis", "cache", "client"}, got)
}
