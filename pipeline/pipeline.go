// Package pipeline turns fetched raw pages into a persisted similarity index.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/embed"
)

// Pipeline runs the stages that follow a crawl: process (load, extract,
// clean, chunk), embed and index. Stages run one after another.
type Pipeline struct {
	Content   ragscrape.ContentStore
	Extractor ragscrape.Extractor
	Chunker   ragscrape.Chunker
	Generator *embed.Generator
	Index     ragscrape.IndexStore
	// Tokens is optional; when set, Result.Tokens sums the chunk tokens.
	Tokens ragscrape.TokenCounter
	Logger *slog.Logger
}

// Result summarizes a pipeline run.
type Result struct {
	// Empty reports that there was nothing to index. No embedding or
	// indexing happened.
	Empty     bool
	Pages     int
	Processed int
	Chunks    int
	Vectors   int
	Dimension int
	Tokens    int
	IndexPath string
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// Run processes every entry of content and indexes the result. An empty
// content map, or one whose pages all turn out unreadable or too short,
// yields Result{Empty: true} and no error.
func (p *Pipeline) Run(ctx context.Context, content *ragscrape.ContentMap) (*Result, error) {
	result := &Result{Pages: content.Len()}
	if content.Len() == 0 {
		result.Empty = true
		return result, nil
	}

	pages, err := p.Process(ctx, content)
	if err != nil {
		return nil, err
	}
	result.Processed = len(pages)
	if len(pages) == 0 {
		result.Empty = true
		return result, nil
	}
	for _, page := range pages {
		result.Chunks += len(page.Chunks)
	}
	result.Tokens = p.countTokens(ctx, pages)

	embedded, err := p.Generator.Generate(ctx, pages)
	if err != nil {
		return nil, err
	}

	summary, err := p.Index.Save(ctx, embedded)
	if err != nil {
		return nil, err
	}
	result.Vectors = summary.Vectors
	result.Dimension = summary.Dimension
	result.IndexPath = summary.IndexPath
	return result, nil
}

// Process loads, extracts and chunks every page of content in order.
// Pages that cannot be loaded or extracted, and pages too short to yield a
// chunk, are logged and skipped. Only context cancellation is returned as
// an error.
func (p *Pipeline) Process(ctx context.Context, content *ragscrape.ContentMap) ([]ragscrape.ProcessedPage, error) {
	log := p.logger()
	var pages []ragscrape.ProcessedPage
	for _, entry := range content.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := p.Content.Load(ctx, entry.Ref)
		if err != nil {
			log.Warn("skipping unreadable page", "url", entry.URL, "ref", entry.Ref, "err", err)
			continue
		}
		extracted, err := p.Extractor.Extract(html, entry.URL)
		if err != nil {
			log.Warn("skipping page without content", "url", entry.URL, "err", err)
			continue
		}
		chunks := p.Chunker.Chunks(entry.URL, extracted.Text)
		if len(chunks) == 0 {
			log.Info("skipping short page", "url", entry.URL, "chars", len([]rune(extracted.Text)))
			continue
		}

		pages = append(pages, ragscrape.ProcessedPage{
			URL:      entry.URL,
			Metadata: extracted.Metadata,
			Chunks:   chunks,
		})
	}
	log.Debug("processed content", "pages", content.Len(), "kept", len(pages))
	return pages, nil
}

// countTokens sums chunk tokens. Counting is informational, so failures are
// logged and yield zero.
func (p *Pipeline) countTokens(ctx context.Context, pages []ragscrape.ProcessedPage) int {
	if p.Tokens == nil {
		return 0
	}
	var total int
	for _, page := range pages {
		for _, c := range page.Chunks {
			n, err := p.Tokens.CountTokens(ctx, c.Text)
			if err != nil {
				p.logger().Warn("token count failed", "url", page.URL, "err", err)
				return 0
			}
			total += n
		}
	}
	return total
}
