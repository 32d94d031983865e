package ragscrape

import "context"

// EmbeddingModel computes vector representations of texts.
type EmbeddingModel interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
