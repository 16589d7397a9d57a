package semantic

import (
	"context"
	"math"

	"github.com/raggrep/raggrep/internal/vocab"
)

// Embedder turns text into a fixed-length vector. A real embedding model is
// an external collaborator; HashEmbedder below is a dependency-free default
// so the semantic track runs standalone without any ML runtime.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// HashEmbedder is a bag-of-words hashing vectorizer: every vocabulary word
// is hashed into one of Dims buckets and the bucket is incremented, then
// the vector is L2-normalized. It has no learned semantics, only term
// co-occurrence, but satisfies the Embedder contract without a model file.
type HashEmbedder struct {
	Dims int
}

// NewHashEmbedder builds a HashEmbedder with the given vector width.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = 256
	}
	return &HashEmbedder{Dims: dims}
}

func (h *HashEmbedder) Dimensions() int { return h.Dims }

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.Dims)
	words := vocab.Tokenize(text)
	for _, w := range words {
		idx := fnv32(w) % uint32(h.Dims)
		vec[idx]++
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return vec, nil
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
