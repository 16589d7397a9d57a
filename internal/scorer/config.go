// Package scorer implements the per-chunk score contribution vector and
// the result fusion/merge rule.
package scorer

// Config centralizes every scoring constant so they can be swapped without
// touching the scoring logic itself.
type Config struct {
	BM25Weight   float64
	SymbolWeight float64

	LiteralMultipliers map[string]map[string]float64

	VocabSignificanceThreshold int
	VocabBaseMultiplier        float64
	VocabStepMultiplier        float64
	VocabStepCap               float64

	ImplementationBoost float64
	DocumentationBoost  float64

	SourceExtensions map[string]bool
	DocExtensions    map[string]bool
}

// DefaultConfig returns the default scoring weights and thresholds.
func DefaultConfig() Config {
	return Config{
		BM25Weight:   0.6,
		SymbolWeight: 0.4,

		LiteralMultipliers: map[string]map[string]float64{
			"definition": {"high": 2.5, "medium": 2.0, "low": 1.5},
			"reference":  {"high": 2.0, "medium": 1.5, "low": 1.3},
			"import":     {"high": 1.5, "medium": 1.3, "low": 1.1},
		},

		VocabSignificanceThreshold: 2,
		VocabBaseMultiplier:        1.3,
		VocabStepMultiplier:        0.1,
		VocabStepCap:               0.5,

		ImplementationBoost: 0.06,
		DocumentationBoost:  0.08,

		SourceExtensions: map[string]bool{
			".go": true, ".ts": true, ".tsx": true, ".js": true, ".jsx": true,
			".py": true, ".java": true, ".rs": true, ".c": true, ".cpp": true,
			".h": true, ".hpp": true, ".rb": true, ".php": true, ".cs": true,
		},
		DocExtensions: map[string]bool{
			".md": true, ".mdx": true, ".rst": true, ".txt": true, ".adoc": true,
		},
	}
}
