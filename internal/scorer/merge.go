package scorer

import "sort"

// ScoredChunk pairs a chunk's identity with its computed contribution.
type ScoredChunk struct {
	ChunkID      string
	FilePath     string
	StartLine    int
	Contribution Contribution
}

// MergeWithLiteralBoost unions scored chunks from the BM25/symbol track and
// the literal-index track by chunkId (callers pass both sets concatenated;
// duplicates are resolved by keeping the highest final score), drops
// anything below minScore, orders by final desc then filepath asc then
// startLine asc, and truncates to topK.
func MergeWithLiteralBoost(chunks []ScoredChunk, minScore float64, topK int) []ScoredChunk {
	best := make(map[string]ScoredChunk, len(chunks))
	order := make([]string, 0, len(chunks))

	for _, c := range chunks {
		existing, ok := best[c.ChunkID]
		if !ok {
			best[c.ChunkID] = c
			order = append(order, c.ChunkID)
			continue
		}
		if c.Contribution.Final > existing.Contribution.Final {
			best[c.ChunkID] = c
		}
	}

	merged := make([]ScoredChunk, 0, len(order))
	for _, id := range order {
		c := best[id]
		if c.Contribution.Final < minScore {
			continue
		}
		merged = append(merged, c)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Contribution.Final != b.Contribution.Final {
			return a.Contribution.Final > b.Contribution.Final
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.StartLine < b.StartLine
	})

	if topK > 0 && len(merged) > topK {
		merged = merged[:topK]
	}
	return merged
}
