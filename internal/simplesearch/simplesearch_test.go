package simplesearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for simplesearch:
// - totalMatches and per-file match counts are correct across multiple files
// - files are sorted by matchCount descending
// - binary extensions and oversized/null-byte content are excluded from scanning

func TestSearchFiles_AuthServiceURLScenario(t *testing.T) {
	t.Parallel()

	// config.ts has 1 literal occurrence, client.ts has 2;
	// totalMatches=3 when AUTH_SERVICE_URL appears literally on those lines only.
	files := []File{
		{Path: "config.ts", Content: "export const AUTH_SERVICE_URL = \"https://auth\";\nconsole.log(\"unrelated\");"},
		{Path: "client.ts", Content: "import { AUTH_SERVICE_URL } from './config';\nfetch(AUTH_SERVICE_URL);"},
	}

	result := SearchFiles(files, "AUTH_SERVICE_URL", Options{})
	require.Len(t, result.Files, 2)
	assert.Equal(t, 3, result.TotalMatches)
}

func TestSearchFiles_SortsByMatchCountDescending(t *testing.T) {
	t.Parallel()

	files := []File{
		{Path: "few.go", Content: "needle"},
		{Path: "many.go", Content: "needle\nneedle\nneedle"},
	}

	result := SearchFiles(files, "needle", Options{})
	require.Len(t, result.Files, 2)
	assert.Equal(t, "many.go", result.Files[0].Path)
	assert.Equal(t, 3, result.Files[0].MatchCount)
	assert.Equal(t, "few.go", result.Files[1].Path)
}

func TestSearchFiles_ExcludesBinaryExtensions(t *testing.T) {
	t.Parallel()

	files := []File{{Path: "icon.png", Content: "needle"}}
	result := SearchFiles(files, "needle", Options{})
	assert.Empty(t, result.Files)
}

func TestSearchFiles_ExcludesNullByteContent(t *testing.T) {
	t.Parallel()

	files := []File{{Path: "binaryish.dat", Content: "needle\x00more"}}
	result := SearchFiles(files, "needle", Options{})
	assert.Empty(t, result.Files)
}

func TestSearchFiles_ExcludesOversizedFiles(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("needle ", maxSearchableBytes/6)
	files := []File{{Path: "huge.txt", Content: big}}
	result := SearchFiles(files, "needle", Options{})
	assert.Empty(t, result.Files)
}

func TestSearchFiles_CaseInsensitiveOption(t *testing.T) {
	t.Parallel()

	files := []File{{Path: "a.go", Content: "NEEDLE here"}}
	result := SearchFiles(files, "needle", Options{CaseInsensitive: true})
	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, result.Files[0].MatchCount)
	// Original casing preserved in the reported occurrence text.
	assert.Equal(t, "NEEDLE here", result.Files[0].Occurrences[0].Text)
}

func TestSearchFiles_CapturesSurroundingContext(t *testing.T) {
	t.Parallel()

	files := []File{{Path: "a.go", Content: "before\nneedle\nafter"}}
	result := SearchFiles(files, "needle", Options{})
	require.Len(t, result.Files, 1)
	require.Len(t, result.Files[0].Occurrences, 1)
	occ := result.Files[0].Occurrences[0]
	assert.Equal(t, "before", occ.ContextPre)
	assert.Equal(t, "after", occ.ContextPost)
}
