package scorer

import (
	"path/filepath"
	"strings"

	"github.com/raggrep/raggrep/internal/vocab"
)

// Contribution is the per-chunk score contribution vector: each signal's
// raw value plus the weighted base and final fused score.
type Contribution struct {
	BM25              float64
	Symbol            float64
	Semantic          float64
	LiteralMultiplier float64
	VocabMultiplier   float64
	FileTypeBoost     float64
	Base              float64
	Final             float64
}

// LiteralHit is one literal-index match type/confidence pair observed for a
// chunk, used to pick the best multiplier.
type LiteralHit struct {
	MatchType  string // "definition" | "reference" | "import"
	Confidence string // "high" | "medium" | "low"
}

// Input bundles everything Score needs for one chunk.
type Input struct {
	Name            string
	FilePath        string
	IsExported      bool
	NormalizedBM25  float64
	QueryTokens     []string
	LiteralHits     []LiteralHit
	MatchedWords    int
	Intent          string // "implementation" | "documentation" | "neutral"
}

// symbolScore computes the `symbol` contribution: how closely the query
// tokens match the chunk's symbol name, favoring exact and exported matches.
func symbolScore(in Input) float64 {
	if len(in.QueryTokens) == 0 || in.Name == "" {
		return 0
	}

	nameLower := strings.ToLower(in.Name)
	nameVocab := vocab.ExtractVocabulary(in.Name)
	vocabSet := make(map[string]bool, len(nameVocab))
	for _, w := range nameVocab {
		vocabSet[w] = true
	}

	var sum float64
	for _, tok := range in.QueryTokens {
		tokLower := strings.ToLower(tok)

		if tokLower == nameLower {
			if in.IsExported {
				sum += 1.0
			} else {
				sum += 0.8
			}
			continue
		}

		if strings.Contains(nameLower, tokLower) || strings.Contains(tokLower, nameLower) {
			if in.IsExported {
				sum += 0.5
			} else {
				sum += 0.4
			}
			continue
		}

		if vocabSet[tokLower] {
			if in.IsExported {
				sum += 0.3
			} else {
				sum += 0.2
			}
		}
	}

	score := sum / float64(len(in.QueryTokens))
	if score > 1 {
		score = 1
	}
	return score
}

// literalMultiplier picks the highest configured multiplier across all
// observed literal-index hits for the chunk.
func literalMultiplier(hits []LiteralHit, cfg Config) float64 {
	best := 1.0
	for _, h := range hits {
		table, ok := cfg.LiteralMultipliers[h.MatchType]
		if !ok {
			continue
		}
		if m, ok := table[h.Confidence]; ok && m > best {
			best = m
		}
	}
	return best
}

// vocabMultiplier rewards chunks whose vocabulary overlaps the query on at
// least VocabSignificanceThreshold words, with a capped step increase per
// extra word.
func vocabMultiplier(matchedWords int, cfg Config) float64 {
	if matchedWords < cfg.VocabSignificanceThreshold {
		return 1.0
	}
	step := float64(matchedWords-cfg.VocabSignificanceThreshold) * cfg.VocabStepMultiplier
	if step > cfg.VocabStepCap {
		step = cfg.VocabStepCap
	}
	return cfg.VocabBaseMultiplier + step
}

// fileTypeBoost nudges the score toward source files for implementation
// intent and toward doc files for documentation intent.
func fileTypeBoost(path, intent string, cfg Config) float64 {
	ext := strings.ToLower(filepath.Ext(path))
	switch intent {
	case "implementation":
		if cfg.SourceExtensions[ext] {
			return cfg.ImplementationBoost
		}
	case "documentation":
		if cfg.DocExtensions[ext] {
			return cfg.DocumentationBoost
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Score computes the full contribution vector and final score for one
// chunk: a weighted base from BM25/symbol signals, multiplied by literal
// and vocabulary boosts, with a file-type nudge and a literal-only fallback
// when there is no base signal at all.
func Score(in Input, cfg Config) Contribution {
	c := Contribution{
		BM25:   in.NormalizedBM25,
		Symbol: symbolScore(in),
	}
	c.Base = cfg.BM25Weight*c.BM25 + cfg.SymbolWeight*c.Symbol
	c.LiteralMultiplier = literalMultiplier(in.LiteralHits, cfg)
	c.VocabMultiplier = vocabMultiplier(in.MatchedWords, cfg)
	c.FileTypeBoost = fileTypeBoost(in.FilePath, in.Intent, cfg)

	if c.Base == 0 && c.LiteralMultiplier > 1 {
		c.Final = clamp01(0.5*c.LiteralMultiplier + c.FileTypeBoost)
		return c
	}

	c.Final = clamp01(c.Base*c.LiteralMultiplier*c.VocabMultiplier + c.FileTypeBoost)
	return c
}
