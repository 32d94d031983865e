package mock

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

var (
	_ ragscrape.EmbeddingModel = (*EmbeddingModel)(nil)
	_ ragscrape.Chunker        = (*Chunker)(nil)
)

// EmbeddingModel is a mock implementation of ragscrape.EmbeddingModel.
type EmbeddingModel struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *EmbeddingModel) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return m.EmbedFn(ctx, texts)
}

// Chunker is a mock implementation of ragscrape.Chunker.
type Chunker struct {
	ChunksFn func(sourceURL, text string) []ragscrape.Chunk
}

func (c *Chunker) Chunks(sourceURL, text string) []ragscrape.Chunk {
	return c.ChunksFn(sourceURL, text)
}
