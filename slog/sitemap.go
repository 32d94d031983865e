package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragscrape"
)

var _ ragscrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService reports how many URLs sitemap discovery yielded.
type LoggingSitemapService struct {
	next   ragscrape.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next ragscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = outcomeLevel(err)
		}
		s.logger.Log(ctx, level, "discover sitemap urls",
			"base", baseURL,
			"found", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL)
}
