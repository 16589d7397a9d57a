package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for pathfilter:
// - A plain segment matches as a path-component prefix, anywhere in the path
// - A glob-meta-character entry compiles and matches as a glob
// - Empty filter matches nothing

func TestFilter_PlainSegmentMatchesAnywhereInPath(t *testing.T) {
	t.Parallel()

	f, err := Compile([]string{"node_modules"})
	require.NoError(t, err)

	assert.True(t, f.Match("node_modules"))
	assert.True(t, f.Match("node_modules/left-pad/index.js"))
	assert.True(t, f.Match("src/node_modules/pkg/index.js"))
	assert.False(t, f.Match("src/not_node_modules/index.js"))
}

func TestFilter_GlobEntryMatches(t *testing.T) {
	t.Parallel()

	f, err := Compile([]string{"**/*.generated.go"})
	require.NoError(t, err)

	assert.True(t, f.Match("internal/api/types.generated.go"))
	assert.False(t, f.Match("internal/api/types.go"))
}

func TestFilter_EmptyMatchesNothing(t *testing.T) {
	t.Parallel()

	f, err := Compile(nil)
	require.NoError(t, err)
	assert.True(t, f.Empty())
	assert.False(t, f.Match("anything.go"))
}

func TestFilter_NormalizesSlashesAndTrimming(t *testing.T) {
	t.Parallel()

	f, err := Compile([]string{"/vendor/"})
	require.NoError(t, err)
	assert.True(t, f.Match("vendor/pkg/foo.go"))
}
