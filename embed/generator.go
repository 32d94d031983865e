// Package embed turns processed pages into embedded pages by batching their
// chunks through an embedding model.
package embed

import (
	"context"
	"log/slog"
	"math"

	"github.com/fwojciec/ragscrape"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Generator embeds the chunks of processed pages in batches. Batches may run
// concurrently; vectors are placed by batch offset so chunk order is kept.
type Generator struct {
	Model     ragscrape.EmbeddingModel
	BatchSize int
	// Normalize scales every vector to unit L2 length.
	Normalize bool
	// Concurrency bounds in-flight batches. Values below one mean one.
	Concurrency int
	// Limiter, when set, gates every model call.
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// NewGenerator returns a sequential Generator with L2 normalization enabled.
func NewGenerator(model ragscrape.EmbeddingModel, batchSize int) *Generator {
	return &Generator{
		Model:       model,
		BatchSize:   batchSize,
		Normalize:   true,
		Concurrency: 1,
	}
}

// NewLimiter returns a limiter allowing rps model calls per second, or nil
// for an unlimited rate.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

type span struct {
	start, end int
}

// Generate embeds every chunk of pages. The result holds one EmbeddedPage
// per input page, each with exactly one vector per chunk. Empty input yields
// an empty result without calling the model. A model returning the wrong
// number of vectors is an EINTERNAL error.
func (g *Generator) Generate(ctx context.Context, pages []ragscrape.ProcessedPage) ([]ragscrape.EmbeddedPage, error) {
	var texts []string
	spans := make([]span, len(pages))
	for i, p := range pages {
		spans[i].start = len(texts)
		for _, c := range p.Chunks {
			texts = append(texts, c.Text)
		}
		spans[i].end = len(texts)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := g.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([]ragscrape.EmbeddedPage, len(pages))
	for i, p := range pages {
		out[i] = ragscrape.EmbeddedPage{
			ProcessedPage: p,
			Embeddings:    vectors[spans[i].start:spans[i].end],
		}
	}
	return out, nil
}

func (g *Generator) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	size := g.BatchSize
	if size <= 0 {
		size = ragscrape.DefaultBatchSize
	}
	limit := g.Concurrency
	if limit < 1 {
		limit = 1
	}

	vectors := make([][]float32, len(texts))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		eg.Go(func() error {
			return g.embedBatch(egctx, texts[start:end], vectors[start:end])
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.logger().Debug("embedded chunks", "chunks", len(texts), "batches", (len(texts)+size-1)/size)
	return vectors, nil
}

// embedBatch embeds batch and writes the vectors into dst, which has the
// same length.
func (g *Generator) embedBatch(ctx context.Context, batch []string, dst [][]float32) error {
	if g.Limiter != nil {
		if err := g.Limiter.Wait(ctx); err != nil {
			return err
		}
	}
	got, err := g.Model.Embed(ctx, batch)
	if err != nil {
		return err
	}
	if len(got) != len(batch) {
		return ragscrape.Errorf(ragscrape.EINTERNAL, "embedding model returned %d vectors for %d texts", len(got), len(batch))
	}
	for i, v := range got {
		if g.Normalize {
			v = Normalize(v)
		}
		dst[i] = v
	}
	return nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

// Normalize returns v scaled to unit L2 length. The zero vector is returned
// unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
