// Package pathfilter implements the `--path` search filter rule: an entry
// is treated as a glob if it contains any of `* ? [ ] { } !`, otherwise as
// a prefix match against path segments.
package pathfilter

import (
	"strings"

	"github.com/gobwas/glob"
)

const globMetaChars = "*?[]{}!"

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, globMetaChars)
}

// Filter matches a normalized path against a mixed set of glob patterns
// and plain path-segment prefixes.
type Filter struct {
	globs    []glob.Glob
	prefixes []string
}

// Compile builds a Filter from raw pathFilter entries.
func Compile(entries []string) (Filter, error) {
	var f Filter
	for _, e := range entries {
		e = normalize(e)
		if e == "" {
			continue
		}
		if isGlob(e) {
			g, err := glob.Compile(e, '/')
			if err != nil {
				return Filter{}, err
			}
			f.globs = append(f.globs, g)
			continue
		}
		f.prefixes = append(f.prefixes, e)
	}
	return f, nil
}

func normalize(p string) string {
	return strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
}

// Match reports whether path is selected by any entry in the filter.
// A prefix entry hits when the normalized path equals the filter, starts
// with "<filter>/", or contains "/<filter>/".
func (f Filter) Match(path string) bool {
	norm := normalize(path)

	for _, g := range f.globs {
		if g.Match(norm) {
			return true
		}
	}

	for _, prefix := range f.prefixes {
		if norm == prefix ||
			strings.HasPrefix(norm, prefix+"/") ||
			strings.Contains(norm, "/"+prefix+"/") {
			return true
		}
	}

	return false
}

// Empty reports whether the filter has no entries (matches nothing).
func (f Filter) Empty() bool {
	return len(f.globs) == 0 && len(f.prefixes) == 0
}
