// Package slog provides logging decorators for ragscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragscrape"
)

// Ensure LoggingFetcher implements ragscrape.Fetcher.
var _ ragscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch. Successful fetches are logged at
// debug level so a normal crawl stays quiet; failures are warnings.
type LoggingFetcher struct {
	next   ragscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ragscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			attrs = append(attrs, "code", ragscrape.ErrorCode(err), "err", err)
		} else {
			attrs = append(attrs, "bytes", len(html))
		}
		f.logger.Log(ctx, outcomeLevel(err), "fetch page", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// outcomeLevel maps an operation result to a log level.
func outcomeLevel(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}
