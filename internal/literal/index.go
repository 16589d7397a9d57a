package literal

import (
	"strings"
	"sync"
)

// entryKey identifies one (chunkId, value) upsert target.
type entryKey struct {
	chunkID string
	value   string // lowercased
}

// Index is the literal index: a primary map from lowercase(value) to
// entries, and a secondary map from lowercase(vocabulary word) to the set
// of lowercase(value) keys that contain it. The entry list is the single
// owner of entry data; the vocabulary map stores keys only, never entries,
// so the two maps can't drift out of sync with each other.
type Index struct {
	mu sync.RWMutex

	byValue map[string][]*Entry         // lowercase(value) -> entries
	byWord  map[string]map[string]bool  // lowercase(word) -> set of lowercase(value)

	// entryIndex tracks, for each (chunkId, value), the position of its
	// Entry inside byValue[value] for O(1) upsert/removal.
	entryIndex map[entryKey]int
}

// New creates an empty literal index.
func New() *Index {
	return &Index{
		byValue:    make(map[string][]*Entry),
		byWord:     make(map[string]map[string]bool),
		entryIndex: make(map[entryKey]int),
	}
}

// AddLiterals upserts each literal by (lowercase(value), chunkId). If an
// entry already exists for that key with a lower-priority matchType, it is
// replaced; otherwise the existing entry is kept.
func (idx *Index) AddLiterals(chunkID, filepath string, literals []ExtractedLiteral) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, lit := range literals {
		valueKey := strings.ToLower(lit.Value)
		key := entryKey{chunkID: chunkID, value: valueKey}

		if pos, exists := idx.entryIndex[key]; exists {
			existing := idx.byValue[valueKey][pos]
			if lit.MatchType.priority() <= existing.MatchType.priority() {
				continue
			}
			existing.Type = lit.Type
			existing.MatchType = lit.MatchType
			existing.Vocabulary = lit.Vocabulary
			idx.reindexWordsLocked(existing)
			continue
		}

		entry := &Entry{
			ChunkID:        chunkID,
			FilePath:       filepath,
			OriginalCasing: lit.Value,
			Type:           lit.Type,
			MatchType:      lit.MatchType,
			Vocabulary:     lit.Vocabulary,
		}
		idx.byValue[valueKey] = append(idx.byValue[valueKey], entry)
		idx.entryIndex[key] = len(idx.byValue[valueKey]) - 1
		idx.reindexWordsLocked(entry)
	}
}

func (idx *Index) reindexWordsLocked(entry *Entry) {
	valueKey := strings.ToLower(entry.OriginalCasing)
	for _, w := range entry.Vocabulary {
		word := strings.ToLower(w)
		set, ok := idx.byWord[word]
		if !ok {
			set = make(map[string]bool)
			idx.byWord[word] = set
		}
		set[valueKey] = true
	}
}

// RemoveChunk deletes every entry belonging to chunkID, keeping the
// vocabulary map consistent (a word whose set becomes empty is removed).
func (idx *Index) RemoveChunk(chunkID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeWhereLocked(func(e *Entry) bool { return e.ChunkID == chunkID })
}

// RemoveFile deletes every entry belonging to filepath.
func (idx *Index) RemoveFile(filepath string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeWhereLocked(func(e *Entry) bool { return e.FilePath == filepath })
}

func (idx *Index) removeWhereLocked(match func(*Entry) bool) {
	for value, entries := range idx.byValue {
		filtered := entries[:0]
		for _, e := range entries {
			if match(e) {
				continue
			}
			filtered = append(filtered, e)
		}
		if len(filtered) == 0 {
			delete(idx.byValue, value)
		} else {
			idx.byValue[value] = filtered
		}
	}

	// Rebuild entryIndex and prune empty word sets lazily.
	idx.entryIndex = make(map[entryKey]int)
	for value, entries := range idx.byValue {
		for i, e := range entries {
			idx.entryIndex[entryKey{chunkID: e.ChunkID, value: value}] = i
		}
	}

	for word, set := range idx.byWord {
		for value := range set {
			if _, exists := idx.byValue[value]; !exists {
				delete(set, value)
			}
		}
		if len(set) == 0 {
			delete(idx.byWord, word)
		}
	}
}

// FindMatches looks up each detected literal's value by lowercase(value)
// and emits one Match per matching entry.
func (idx *Index) FindMatches(queryValues []string) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var matches []Match
	for _, q := range queryValues {
		entries := idx.byValue[strings.ToLower(q)]
		for _, e := range entries {
			matches = append(matches, Match{
				QueryLiteral:   q,
				IndexedLiteral: *e,
				ChunkID:        e.ChunkID,
				FilePath:       e.FilePath,
				ExactMatch:     e.OriginalCasing == q,
			})
		}
	}
	return matches
}

// WordMatch is one (chunkId, originalCasing) pair with the set of query
// words that matched its vocabulary.
type WordMatch struct {
	ChunkID        string
	FilePath       string
	OriginalCasing string
	Words          map[string]bool
}

// FindByVocabularyWords returns, per (chunkId, originalCasing), the set of
// query words that matched, used for partial-match scoring.
func (idx *Index) FindByVocabularyWords(words []string) []WordMatch {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type key struct {
		chunkID string
		value   string
	}
	acc := make(map[key]map[string]bool)
	order := make([]key, 0)

	for _, w := range words {
		word := strings.ToLower(w)
		values, ok := idx.byWord[word]
		if !ok {
			continue
		}
		for value := range values {
			for _, e := range idx.byValue[value] {
				k := key{chunkID: e.ChunkID, value: value}
				set, exists := acc[k]
				if !exists {
					set = make(map[string]bool)
					acc[k] = set
					order = append(order, k)
				}
				set[word] = true
			}
		}
	}

	out := make([]WordMatch, 0, len(order))
	for _, k := range order {
		var original, path string
		for _, e := range idx.byValue[k.value] {
			if e.ChunkID == k.chunkID {
				original = e.OriginalCasing
				path = e.FilePath
				break
			}
		}
		out = append(out, WordMatch{ChunkID: k.chunkID, FilePath: path, OriginalCasing: original, Words: acc[k]})
	}
	return out
}
