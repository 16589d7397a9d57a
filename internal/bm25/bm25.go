// Package bm25 implements an Okapi BM25 inverted index with incremental
// document add/remove and a stable JSON serialization.
package bm25

import (
	"math"
	"sort"
	"sync"
)

// Config centralizes the BM25 scoring knobs.
type Config struct {
	K1             float64
	B              float64
	NormalizationC float64
}

// DefaultConfig returns k1=1.2, b=0.75, normalization c=2.0.
func DefaultConfig() Config {
	return Config{K1: 1.2, B: 0.75, NormalizationC: 2.0}
}

type posting struct {
	docID string
	tf    int
}

// Index is an Okapi BM25 inverted index over a collection of documents
// identified by docID.
type Index struct {
	mu sync.RWMutex

	cfg Config

	postings   map[string][]posting // term -> postings
	docLength  map[string]int       // docID -> term count
	totalTerms int
}

// New creates an empty BM25 index with the given scoring configuration.
func New(cfg Config) *Index {
	return &Index{
		cfg:       cfg,
		postings:  make(map[string][]posting),
		docLength: make(map[string]int),
	}
}

// N returns the number of documents currently indexed.
func (idx *Index) N() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docLength)
}

// AvgDocLength returns the average document length across all indexed
// documents (0 if empty).
func (idx *Index) AvgDocLength() float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.avgDocLengthLocked()
}

func (idx *Index) avgDocLengthLocked() float64 {
	if len(idx.docLength) == 0 {
		return 0
	}
	return float64(idx.totalTerms) / float64(len(idx.docLength))
}

// AddDocument indexes terms under docID, replacing any prior document with
// the same id.
func (idx *Index) AddDocument(docID string, terms []string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.docLength[docID]; exists {
		idx.removeDocumentLocked(docID)
	}

	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}

	for term, count := range tf {
		idx.postings[term] = append(idx.postings[term], posting{docID: docID, tf: count})
	}

	idx.docLength[docID] = len(terms)
	idx.totalTerms += len(terms)
}

// RemoveDocument removes docID from the index. Postings left empty after
// removal are pruned.
func (idx *Index) RemoveDocument(docID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeDocumentLocked(docID)
}

func (idx *Index) removeDocumentLocked(docID string) {
	length, exists := idx.docLength[docID]
	if !exists {
		return
	}

	for term, list := range idx.postings {
		filtered := list[:0]
		for _, p := range list {
			if p.docID != docID {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			delete(idx.postings, term)
		} else {
			idx.postings[term] = filtered
		}
	}

	idx.totalTerms -= length
	delete(idx.docLength, docID)
}

// Result is one scored document from Search.
type Result struct {
	DocID string
	Score float64
}

// idf computes the BM25+1 variant idf: ln((N-df+0.5)/(df+0.5) + 1).
func (idx *Index) idfLocked(df int) float64 {
	n := float64(len(idx.docLength))
	d := float64(df)
	return math.Log((n-d+0.5)/(d+0.5) + 1)
}

// Search scores every document containing at least one query term and
// returns the top k by descending score.
func (idx *Index) Search(queryTerms []string, k int) []Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.docLength) == 0 || len(queryTerms) == 0 {
		return nil
	}

	avgdl := idx.avgDocLengthLocked()
	scores := make(map[string]float64)

	seenTerms := make(map[string]bool, len(queryTerms))
	for _, term := range queryTerms {
		if seenTerms[term] {
			continue
		}
		seenTerms[term] = true

		list, ok := idx.postings[term]
		if !ok {
			continue
		}
		idf := idx.idfLocked(len(list))

		for _, p := range list {
			dl := float64(idx.docLength[p.docID])
			tf := float64(p.tf)
			denom := tf + idx.cfg.K1*(1-idx.cfg.B+idx.cfg.B*dl/avgdl)
			scores[p.docID] += idf * (tf * (idx.cfg.K1 + 1)) / denom
		}
	}

	results := make([]Result, 0, len(scores))
	for docID, score := range scores {
		results = append(results, Result{DocID: docID, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// NormalizeScore maps a non-negative raw BM25 score into [0,1] via
// raw/(raw+c), so typical top results land in [0.5, 0.9].
func (idx *Index) NormalizeScore(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	c := idx.cfg.NormalizationC
	return raw / (raw + c)
}

// RawScore returns the single-document BM25 score of docID for the given
// query terms, or 0 if the document is unknown (used by the scorer to
// broadcast a per-file score to all of a file's chunks).
func (idx *Index) RawScore(docID string, queryTerms []string) float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	dl, ok := idx.docLength[docID]
	if !ok || len(idx.docLength) == 0 {
		return 0
	}
	avgdl := idx.avgDocLengthLocked()

	score := 0.0
	seen := make(map[string]bool, len(queryTerms))
	for _, term := range queryTerms {
		if seen[term] {
			continue
		}
		seen[term] = true

		list, ok := idx.postings[term]
		if !ok {
			continue
		}
		var tf int
		for _, p := range list {
			if p.docID == docID {
				tf = p.tf
				break
			}
		}
		if tf == 0 {
			continue
		}
		idf := idx.idfLocked(len(list))
		tff := float64(tf)
		denom := tff + idx.cfg.K1*(1-idx.cfg.B+idx.cfg.B*float64(dl)/avgdl)
		score += idf * (tff * (idx.cfg.K1 + 1)) / denom
	}
	return score
}
