package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for query:
// - IsIdentifierQuery + ExtractSearchLiteral on backtick-quoted and screaming-snake queries
// - DetectIntent picks implementation/documentation correctly, documentation wins ties
// - isIdentifierQuery(q) == true implies detectedLiterals is non-empty

func TestIsIdentifierQuery_ScreamingSnakeCase(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIdentifierQuery("AUTH_SERVICE_GRPC_URL"))
}

func TestExtractSearchLiteral_ExplicitBacktick(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AUTH_SERVICE_URL", ExtractSearchLiteral("`AUTH_SERVICE_URL`"))
}

func TestExtractSearchLiteral_ExplicitDoubleQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "getUserById", ExtractSearchLiteral(`"getUserById"`))
}

func TestExtractSearchLiteral_NoLiteralFallsBackToTrimmedQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "how does caching work", ExtractSearchLiteral("  how does caching work  "))
}

func TestDetectIntent_Implementation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IntentImplementation, DetectIntent([]string{"redis", "cache", "implementation"}))
}

func TestDetectIntent_Documentation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IntentDocumentation, DetectIntent([]string{"api", "documentation"}))
}

func TestDetectIntent_DocumentationWinsTies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IntentDocumentation, DetectIntent([]string{"cache", "documentation"}))
}

func TestDetectIntent_Neutral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IntentNeutral, DetectIntent([]string{"hello", "world"}))
}

func TestIsIdentifierQuery_ImpliesNonEmptyDetectedLiterals(t *testing.T) {
	t.Parallel()

	queries := []string{
		"AUTH_SERVICE_GRPC_URL",
		"getUserById",
		"XMLHttpRequest",
		"snake_case_name",
		"kebab-case-name",
		"plain text query",
	}
	for _, q := range queries {
		parsed := ParseQuery(q)
		if IsIdentifierQuery(q) {
			require.NotEmpty(t, parsed.DetectedLiterals, "query %q", q)
		}
	}
}

func TestParseQuery_ExplicitQuoteRemovesLiteralFromRemaining(t *testing.T) {
	t.Parallel()

	parsed := ParseQuery(`find "getUserById" usages`)
	require.Len(t, parsed.DetectedLiterals, 1)
	assert.Equal(t, "getUserById", parsed.DetectedLiterals[0].Value)
	assert.Equal(t, ConfidenceHigh, parsed.DetectedLiterals[0].Confidence)
	assert.NotContains(t, parsed.RemainingQuery, "getUserById")
}

func TestParseQuery_SingleIdentifierTokenIsHighConfidence(t *testing.T) {
	t.Parallel()

	parsed := ParseQuery("getUserById")
	require.Len(t, parsed.DetectedLiterals, 1)
	assert.Equal(t, ConfidenceHigh, parsed.DetectedLiterals[0].Confidence)
}

func TestParseQuery_MultiTokenIdentifierIsMediumConfidence(t *testing.T) {
	t.Parallel()

	parsed := ParseQuery("show me getUserById please")
	require.NotEmpty(t, parsed.DetectedLiterals)
	assert.Equal(t, ConfidenceMedium, parsed.DetectedLiterals[0].Confidence)
}

// "implementation" and "code" are both query stop words (dropped from the
// vocabulary-match track) and intent signal words. ParseQuery must still
// classify intent from them even though they never survive into
// RemainingQuery's vocabulary.
func TestParseQuery_IntentSurvivesQueryStopWordOverlap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IntentImplementation, ParseQuery("show me the login implementation").Intent)
	assert.Equal(t, IntentImplementation, ParseQuery("walk me through this code").Intent)
}
