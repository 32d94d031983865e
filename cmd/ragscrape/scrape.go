package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/fwojciec/ragscrape/pipeline"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var disallow []string
	if cfg.Crawl.RespectRobots && deps.Robots != nil {
		disallow = deps.Robots.Load(ctx, cfg.Crawl.Domain)
	}
	policy := ragscrape.NewPolicy(cfg.Crawl.AllowedDomains, disallow)

	mode := ragscrape.ModeStandard
	if c.Interactive {
		mode = ragscrape.ModeInteractive
	}
	session := crawl.NewSession(cfg.Crawl, mode, policy)
	session.Seed(cfg.Crawl.StartURLs)
	if cfg.Crawl.UseSitemap {
		if n := deps.Crawler.SeedFromSitemap(ctx, session, cfg.Crawl.StartURLs[0]); n > 0 {
			fmt.Fprintf(deps.Stdout, "Seeded %d URLs from sitemap\n", n)
		}
	}

	if err := deps.Catalog.CreateSession(ctx, &session.Session); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Session %s (%s)\n", session.ID, mode)

	content, crawlErr := c.crawl(deps, session)
	if err := c.record(deps, session); err != nil {
		return err
	}
	if crawlErr != nil {
		return crawlErr
	}

	return runPipeline(deps, deps.Pipeline, content)
}

// crawl collects content for the session in the selected mode.
func (c *ScrapeCmd) crawl(deps *Dependencies, session *crawl.Session) (*ragscrape.ContentMap, error) {
	progress := progressPrinter(deps)

	if c.Interactive {
		m := &crawl.Interactive{
			Discoverer: &crawl.Discoverer{Crawler: deps.Crawler},
			Selector:   &crawl.Selector{Chooser: deps.Chooser, Logger: deps.Logger},
			Progress:   progress,
		}
		content, err := m.Run(deps.Ctx, session)
		session.Content = content
		return content, err
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, session, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Crawl: %s\n", crawl.FormatResult(result))
	}
	return session.Content, err
}

// record persists what the session discovered and fetched, so that
// "process" and "pages" can revisit it.
func (c *ScrapeCmd) record(deps *Dependencies, session *crawl.Session) error {
	// Crawling may have been canceled; the catalog write must still happen.
	ctx := context.WithoutCancel(deps.Ctx)
	if err := deps.Catalog.SavePageRecords(ctx, session.ID, session.Records); err != nil {
		return err
	}
	if session.Content == nil {
		return nil
	}
	return deps.Catalog.SaveContent(ctx, session.ID, session.Content)
}

// runPipeline indexes content and prints a summary.
func runPipeline(deps *Dependencies, p *pipeline.Pipeline, content *ragscrape.ContentMap) error {
	if content == nil || content.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No pages fetched, nothing to index.")
		return nil
	}

	result, err := p.Run(deps.Ctx, content)
	if err != nil {
		return err
	}
	if result.Empty {
		fmt.Fprintf(deps.Stdout, "None of %d pages had enough content, nothing to index.\n", result.Pages)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d of %d pages (dimension %d)\n",
		result.Vectors, result.Processed, result.Pages, result.Dimension)
	if result.Tokens > 0 {
		fmt.Fprintf(deps.Stdout, "Chunks total %s\n", crawl.FormatTokens(result.Tokens))
	}
	fmt.Fprintf(deps.Stdout, "Index written to %s\n", result.IndexPath)
	return nil
}

// progressPrinter reports failed pages on stderr as they happen.
func progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 80), message(event.Error))
		}
	}
}
