package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragscrape"
)

// Ensure LoggingIndexStore implements ragscrape.IndexStore.
var _ ragscrape.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with logging.
type LoggingIndexStore struct {
	next   ragscrape.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next ragscrape.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs what was written.
func (s *LoggingIndexStore) Save(ctx context.Context, pages []ragscrape.EmbeddedPage) (summary *ragscrape.IndexSummary, err error) {
	defer func(begin time.Time) {
		attrs := []any{"pages", len(pages), "duration", time.Since(begin), "err", err}
		if summary != nil {
			attrs = append(attrs, "vectors", summary.Vectors, "dim", summary.Dimension, "path", summary.IndexPath)
		}
		s.logger.Info("index save", attrs...)
	}(time.Now())
	return s.next.Save(ctx, pages)
}

// Load delegates to the wrapped store and logs how many entries were read.
func (s *LoggingIndexStore) Load(ctx context.Context) (loaded *ragscrape.LoadedIndex, err error) {
	defer func(begin time.Time) {
		count := 0
		if loaded != nil {
			count = len(loaded.Chunks)
		}
		s.logger.Info("index load",
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}
