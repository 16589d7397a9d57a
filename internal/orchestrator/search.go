package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/raggrep/raggrep/internal/pathfilter"
	"github.com/raggrep/raggrep/internal/query"
	"github.com/raggrep/raggrep/internal/scorer"
	"github.com/raggrep/raggrep/internal/simplesearch"
	"github.com/raggrep/raggrep/internal/vocab"
)

// Search runs query analysis, then the BM25/literal/vocabulary/simple-search
// tracks, then score fusion, against this module's in-memory snapshot.
// rootDir is only needed to re-read file bytes for the simple-search track
// and the (optional) freshness sweep.
func (e *Engine) Search(ctx context.Context, q string, opts SearchOptions, rootDir string, extensions, ignorePaths []string) ([]SearchResult, error) {
	if opts.EnsureFresh {
		if _, err := e.Cleanup(rootDir, extensions, ignorePaths); err != nil {
			return nil, err
		}
	}

	parsed := query.ParseQuery(q)
	queryTokens := vocab.ExtractQueryVocabulary(q)

	filter, err := pathfilter.Compile(opts.PathFilters)
	if err != nil {
		return nil, err
	}

	var bm25Terms []string
	if parsed.RemainingQuery != "" {
		bm25Terms = vocab.Tokenize(parsed.RemainingQuery)
	} else {
		bm25Terms = vocab.Tokenize(q)
	}

	var literalValues []string
	for _, l := range parsed.DetectedLiterals {
		literalValues = append(literalValues, l.Value)
	}

	g, gctx := errgroup.WithContext(ctx)

	var bm25Results []bm25FileHit
	g.Go(func() error {
		for _, r := range e.BM25.Search(bm25Terms, 0) {
			bm25Results = append(bm25Results, bm25FileHit{FilePath: r.DocID, Raw: r.Score})
		}
		return nil
	})

	var literalMatches []literalHitInfo
	g.Go(func() error {
		for _, m := range e.Literal.FindMatches(literalValues) {
			conf := confidenceFor(m.QueryLiteral, parsed)
			literalMatches = append(literalMatches, literalHitInfo{
				ChunkID: m.ChunkID, FilePath: m.FilePath,
				MatchType: string(m.IndexedLiteral.MatchType), Confidence: conf,
			})
		}
		return nil
	})

	var vocabMatches []wordHit
	g.Go(func() error {
		for _, wm := range e.Literal.FindByVocabularyWords(queryTokens) {
			vocabMatches = append(vocabMatches, wordHit{ChunkID: wm.ChunkID, FilePath: wm.FilePath, Count: len(wm.Words)})
		}
		return nil
	})

	var simpleResult simplesearch.Result
	if query.IsIdentifierQuery(q) {
		g.Go(func() error {
			literalValue := query.ExtractSearchLiteral(q)
			files, err := loadSearchableFiles(gctx, rootDir, extensions, ignorePaths)
			if err != nil {
				return err
			}
			simpleResult = simplesearch.SearchFiles(files, literalValue, simplesearch.Options{MaxOccurrencesPerFile: 20, MaxFiles: 50})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, nil // cancelled queries return an empty result set rather than a partial one
	default:
	}

	candidates, err := e.buildCandidates(bm25Results, literalMatches, vocabMatches)
	if err != nil {
		return nil, err
	}

	var scored []scorer.ScoredChunk
	cfg := scorer.DefaultConfig()
	for _, c := range candidates {
		if !filter.Empty() && !filter.Match(c.FilePath) {
			continue
		}
		input := scorer.Input{
			Name: c.Name, FilePath: c.FilePath, IsExported: c.IsExported,
			NormalizedBM25: c.NormalizedBM25, QueryTokens: queryTokens,
			LiteralHits: c.LiteralHits, MatchedWords: c.MatchedWords,
			Intent: string(parsed.Intent),
		}
		contribution := scorer.Score(input, cfg)
		scored = append(scored, scorer.ScoredChunk{
			ChunkID: c.ChunkID, FilePath: c.FilePath, StartLine: c.StartLine,
			Contribution: contribution,
		})
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = 10
	}
	merged := scorer.MergeWithLiteralBoost(scored, opts.MinScore, topK)

	results := make([]SearchResult, 0, len(merged))
	byID := make(map[string]candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ChunkID] = c
	}
	for _, m := range merged {
		c := byID[m.ChunkID]
		results = append(results, SearchResult{
			ChunkID: m.ChunkID, FilePath: m.FilePath, StartLine: m.StartLine,
			EndLine: c.EndLine, Content: c.Content, Score: m.Contribution.Final,
			Contribution: m.Contribution,
		})
	}

	if simpleResult.TotalMatches > 0 {
		results = mergeSimpleSearchResults(results, simpleResult, cfg, parsed)
	}

	return results, nil
}

type bm25FileHit struct {
	FilePath string
	Raw      float64
}

type literalHitInfo struct {
	ChunkID    string
	FilePath   string
	MatchType  string
	Confidence string
}

type wordHit struct {
	ChunkID  string
	FilePath string
	Count    int
}

type candidate struct {
	ChunkID        string
	FilePath       string
	StartLine      int
	EndLine        int
	Content        string
	Name           string
	IsExported     bool
	NormalizedBM25 float64
	LiteralHits    []scorer.LiteralHit
	MatchedWords   int
}

// buildCandidates assembles the per-chunk scoring inputs from every track's
// output: it loads each distinct file's FileIndex once, then overlays the
// per-file BM25 score (broadcast to every one of the file's chunks, since
// BM25 documents are indexed at file granularity), literal hits, and
// vocabulary-match counts onto the matching chunks.
func (e *Engine) buildCandidates(bm25Results []bm25FileHit, literalMatches []literalHitInfo, vocabMatches []wordHit) ([]candidate, error) {
	bm25ByFile := make(map[string]float64, len(bm25Results))
	for _, r := range bm25Results {
		bm25ByFile[r.FilePath] = e.BM25.NormalizeScore(r.Raw)
	}

	litByChunk := make(map[string][]scorer.LiteralHit)
	filesNeeded := make(map[string]bool)
	for _, m := range literalMatches {
		litByChunk[m.ChunkID] = append(litByChunk[m.ChunkID], scorer.LiteralHit{MatchType: m.MatchType, Confidence: m.Confidence})
		filesNeeded[m.FilePath] = true
	}

	vocabByChunk := make(map[string]int)
	for _, wm := range vocabMatches {
		vocabByChunk[wm.ChunkID] = wm.Count
		filesNeeded[wm.FilePath] = true
	}

	for f := range bm25ByFile {
		filesNeeded[f] = true
	}

	var out []candidate
	for f := range filesNeeded {
		idx, ok, err := e.Store.LoadFileIndex(e.ModuleID, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, c := range idx.Chunks {
			out = append(out, candidate{
				ChunkID: c.ChunkID, FilePath: c.FilePath, StartLine: c.StartLine,
				EndLine: c.EndLine, Content: c.Content, Name: c.Name, IsExported: c.IsExported,
				NormalizedBM25: bm25ByFile[f],
				LiteralHits:    litByChunk[c.ChunkID],
				MatchedWords:   vocabByChunk[c.ChunkID],
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].StartLine < out[j].StartLine
	})
	return out, nil
}

// confidenceFor maps a matched query literal back to the confidence at
// which it was detected: the literal-multiplier table is indexed by that
// query-side detection confidence, not by anything about the match itself.
func confidenceFor(value string, parsed query.ParsedQuery) string {
	for _, l := range parsed.DetectedLiterals {
		if l.Value == value {
			return string(l.Confidence)
		}
	}
	return string(query.ConfidenceMedium)
}

// mergeSimpleSearchResults folds grep-track hits that the BM25/literal
// tracks didn't already surface into the ranked list, using the literal-
// only fallback formula (no BM25/symbol signal, scored from the literal
// multiplier alone).
func mergeSimpleSearchResults(results []SearchResult, simple simplesearch.Result, cfg scorer.Config, parsed query.ParsedQuery) []SearchResult {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.FilePath] = true
	}

	conf := string(query.ConfidenceHigh)
	if len(parsed.DetectedLiterals) > 0 {
		conf = string(parsed.DetectedLiterals[0].Confidence)
	}
	mult := cfg.LiteralMultipliers["reference"][conf]
	if mult == 0 {
		mult = 1.0
	}

	for _, f := range simple.Files {
		if seen[f.Path] || len(f.Occurrences) == 0 {
			continue
		}
		occ := f.Occurrences[0]
		final := 0.5 * mult
		if final > 1 {
			final = 1
		}
		results = append(results, SearchResult{
			FilePath: f.Path, StartLine: occ.Line, EndLine: occ.Line,
			Content: occ.Text, Score: final,
			Contribution: scorer.Contribution{LiteralMultiplier: mult, Final: final},
		})
	}
	return results
}

func loadSearchableFiles(ctx context.Context, rootDir string, extensions, ignorePaths []string) ([]simplesearch.File, error) {
	rels, err := discoverFiles(rootDir, extensions, ignorePaths)
	if err != nil {
		return nil, err
	}
	out := make([]simplesearch.File, 0, len(rels))
	for _, rel := range rels {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		content, err := os.ReadFile(filepath.Join(rootDir, rel))
		if err != nil {
			continue
		}
		out = append(out, simplesearch.File{Path: rel, Content: string(content)})
	}
	return out, nil
}
