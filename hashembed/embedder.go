// Package hashembed provides an offline embedding model based on feature
// hashing. Vectors are deterministic, so runs can be reproduced without an
// API key.
package hashembed

import (
	"context"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ragscrape"
)

// DefaultDimension is used when no dimension is given.
const DefaultDimension = 256

// Ensure Embedder implements ragscrape.EmbeddingModel at compile time.
var _ ragscrape.EmbeddingModel = (*Embedder)(nil)

// Embedder maps lowercased word unigrams into a fixed number of buckets.
// The top bit of each word's hash picks the sign of its contribution.
type Embedder struct {
	dimension int
}

// NewEmbedder returns an Embedder producing vectors of the given dimension.
func NewEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{dimension: dimension}
}

// Dimension returns the vector dimension.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// Embed returns one vector per text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	v := make([]float32, e.dimension)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h := xxhash.Sum64String(w)
		bucket := h % uint64(e.dimension)
		if h>>63 == 1 {
			v[bucket]--
		} else {
			v[bucket]++
		}
	}
	return v
}
