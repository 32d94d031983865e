// Package crawl provides the crawl engine: a breadth-first frontier, the
// standard fetch-and-persist loop, metadata-only discovery, and the
// interactive selection state machine.
package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/ragscrape"
)

// Crawler fetches pages of one domain and follows their links.
// Fetches are strictly sequential, each preceded by the Delayer's pause.
type Crawler struct {
	Fetcher   ragscrape.Fetcher
	Extractor ragscrape.Extractor
	Store     ragscrape.ContentStore
	// Sitemaps is optional; when set, SeedFromSitemap adds its URLs.
	Sitemaps ragscrape.SitemapService
	Delayer  Delayer
	Logger   *slog.Logger
}

// Result holds the outcome of a crawl pass.
type Result struct {
	Visited int
	Saved   int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a crawl pass.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

func (f ProgressFunc) emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// SeedFromSitemap enqueues URLs listed in the site's sitemaps at depth zero.
// Sitemap failures are logged and never abort the crawl.
func (c *Crawler) SeedFromSitemap(ctx context.Context, s *Session, baseURL string) int {
	if c.Sitemaps == nil {
		return 0
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "url", baseURL, "err", err)
		return 0
	}
	n := s.Seed(urls)
	c.logger().Debug("seeded from sitemap", "found", len(urls), "accepted", n)
	return n
}

// Crawl runs the standard loop: every fetched page is persisted to the
// content store, recorded in the session's ContentMap and its links are
// fed back into the frontier. Fetch and persistence failures are logged and
// skipped. The only error returned is context cancellation.
func (c *Crawler) Crawl(ctx context.Context, s *Session, progress ProgressFunc) (*Result, error) {
	return c.walk(ctx, s, progress, func(ctx context.Context, url, html string) error {
		ref, err := c.Store.Save(ctx, url, html)
		if err != nil {
			return err
		}
		s.Content.Put(url, ref)
		return nil
	})
}

// FetchSelected fetches exactly urls, in order, persisting each page.
// No links are followed. Failed URLs are logged and omitted from the
// returned ContentMap, which is also stored on the session.
func (c *Crawler) FetchSelected(ctx context.Context, s *Session, urls []string, progress ProgressFunc) (*ragscrape.ContentMap, error) {
	content := ragscrape.NewContentMap()
	s.Content = content

	progress.emit(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	for i, u := range urls {
		if err := c.Delayer.Wait(ctx); err != nil {
			return content, err
		}
		html, err := c.Fetcher.Fetch(ctx, u)
		if err == nil {
			var ref string
			if ref, err = c.Store.Save(ctx, u, html); err == nil {
				content.Put(u, ref)
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return content, ctx.Err()
			}
			c.logger().Warn("fetch selected page failed", "url", u, "err", err)
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(urls), URL: u, Error: err})
			continue
		}
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: len(urls), URL: u})
	}
	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})
	return content, nil
}

// pageHandler is called for each successfully fetched page. Returning an
// error marks the page failed without stopping the walk.
type pageHandler func(ctx context.Context, url, html string) error

// walk drains the session frontier breadth first until it is exhausted.
// Each dequeued URL is marked visited before it is fetched, so failed
// fetches still count against the page budget.
func (c *Crawler) walk(ctx context.Context, s *Session, progress ProgressFunc, handle pageHandler) (*Result, error) {
	var result Result
	log := c.logger()

	var disallow []string
	if s.Frontier.policy != nil {
		disallow = s.Frontier.policy.Disallowed()
	}
	log.Debug("crawl started", "pending", s.Frontier.Len(), "budget", s.Frontier.maxPages, "disallow", disallow)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: s.Frontier.maxPages})
	for !s.Frontier.Exhausted() {
		if err := ctx.Err(); err != nil {
			return &result, err
		}
		target, ok := s.Frontier.Dequeue()
		if !ok {
			break
		}
		if !s.Frontier.MarkVisited(target.URL) {
			continue
		}
		result.Visited++

		fail := func(err error) {
			result.Failed++
			log.Warn("skipping page", "url", target.URL, "depth", target.Depth, "err", err)
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: result.Visited, Total: s.Frontier.maxPages, URL: target.URL, Error: err})
		}

		if err := c.Delayer.Wait(ctx); err != nil {
			return &result, err
		}
		html, err := c.Fetcher.Fetch(ctx, target.URL)
		if err != nil {
			if ctx.Err() != nil {
				return &result, ctx.Err()
			}
			fail(err)
			continue
		}

		page, err := c.Extractor.Inspect(html, target.URL)
		if err != nil {
			fail(err)
			continue
		}
		s.Records = append(s.Records, page.Record)

		// Links are followed even when the page itself cannot be kept.
		var queued int
		for _, link := range page.Links {
			if s.Frontier.Enqueue(link, target.Depth+1) {
				queued++
			}
		}
		log.Debug("visited page", "url", target.URL, "depth", target.Depth, "links", len(page.Links), "queued", queued)

		if handle != nil {
			if err := handle(ctx, target.URL, html); err != nil {
				fail(err)
				continue
			}
			result.Saved++
		}
		result.Bytes += len(html)
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: result.Visited, Total: s.Frontier.maxPages, URL: target.URL})
	}
	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: result.Visited, Total: result.Visited})
	log.Debug("crawl finished",
		"visited", s.Frontier.VisitedCount(),
		"visited_estimate", s.Frontier.EstimatedVisited(),
		"pending", s.Frontier.Len(),
		"failed", result.Failed,
	)

	return &result, nil
}
