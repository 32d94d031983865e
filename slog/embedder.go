package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragscrape"
)

// Ensure LoggingEmbeddingModel implements ragscrape.EmbeddingModel.
var _ ragscrape.EmbeddingModel = (*LoggingEmbeddingModel)(nil)

// LoggingEmbeddingModel wraps an EmbeddingModel with per-batch logging.
type LoggingEmbeddingModel struct {
	next   ragscrape.EmbeddingModel
	logger *slog.Logger
}

// NewLoggingEmbeddingModel creates a new LoggingEmbeddingModel.
func NewLoggingEmbeddingModel(next ragscrape.EmbeddingModel, logger *slog.Logger) *LoggingEmbeddingModel {
	return &LoggingEmbeddingModel{next: next, logger: logger}
}

// Embed delegates to the wrapped model and logs the batch.
func (m *LoggingEmbeddingModel) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		m.logger.Info("embed batch",
			"texts", len(texts),
			"vectors", len(vectors),
			"dim", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Embed(ctx, texts)
}
