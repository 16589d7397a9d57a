// Package simplesearch implements grep-style literal scanning over a file
// set, used as a supplemental track for identifier-shaped queries.
package simplesearch

import (
	"sort"
	"strings"
)

// File is one file available for scanning.
type File struct {
	Path    string
	Content string
}

// Occurrence is one matching line with surrounding context.
type Occurrence struct {
	Line       int
	Text       string
	ContextPre string
	ContextPost string
}

// FileResult is the per-file scan outcome.
type FileResult struct {
	Path        string
	MatchCount  int
	Occurrences []Occurrence
}

// Options controls SearchFiles behavior.
type Options struct {
	CaseInsensitive       bool
	MaxOccurrencesPerFile int
	MaxFiles              int
}

// Result is the whole-search outcome.
type Result struct {
	TotalMatches int
	Files        []FileResult
	Truncated    bool
}

var binaryExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "ico": true, "webp": true,
	"pdf": true, "zip": true, "tar": true, "gz": true, "rar": true, "exe": true,
	"dll": true, "so": true, "dylib": true, "woff": true, "woff2": true, "ttf": true,
	"eot": true, "mp3": true, "mp4": true, "wav": true, "avi": true,
}

const maxSearchableBytes = 1 << 20 // 1 MiB

// isSearchable excludes null-byte content, oversized files, and known
// binary extensions.
func isSearchable(path, content string) bool {
	if len(content) > maxSearchableBytes {
		return false
	}
	if strings.IndexByte(content, 0) >= 0 {
		return false
	}
	ext := ""
	if dot := strings.LastIndexByte(path, '.'); dot >= 0 {
		ext = strings.ToLower(path[dot+1:])
	}
	return !binaryExtensions[ext]
}

// SearchFiles scans files for exact occurrences of literal, with one line
// of context on each side.
func SearchFiles(files []File, literal string, opts Options) Result {
	maxOcc := opts.MaxOccurrencesPerFile
	if maxOcc <= 0 {
		maxOcc = 1 << 30
	}
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 1 << 30
	}

	needle := literal
	if opts.CaseInsensitive {
		needle = strings.ToLower(literal)
	}

	var results []FileResult
	total := 0

	for _, f := range files {
		if !isSearchable(f.Path, f.Content) {
			continue
		}

		lines := strings.Split(f.Content, "\n")
		haystackLines := lines
		if opts.CaseInsensitive {
			haystackLines = make([]string, len(lines))
			for i, l := range lines {
				haystackLines[i] = strings.ToLower(l)
			}
		}

		var occs []Occurrence
		count := 0
		for i, hl := range haystackLines {
			if !strings.Contains(hl, needle) {
				continue
			}
			count++
			if len(occs) < maxOcc {
				occ := Occurrence{Line: i + 1, Text: lines[i]}
				if i > 0 {
					occ.ContextPre = lines[i-1]
				}
				if i+1 < len(lines) {
					occ.ContextPost = lines[i+1]
				}
				occs = append(occs, occ)
			}
		}

		if count == 0 {
			continue
		}
		total += count
		results = append(results, FileResult{Path: f.Path, MatchCount: count, Occurrences: occs})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})

	truncated := len(results) > maxFiles
	if truncated {
		results = results[:maxFiles]
	}

	return Result{TotalMatches: total, Files: results, Truncated: truncated}
}
