package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/fwojciec/ragscrape/embed"
	"github.com/fwojciec/ragscrape/fs"
	"github.com/fwojciec/ragscrape/gemini"
	"github.com/fwojciec/ragscrape/goquery"
	"github.com/fwojciec/ragscrape/hashembed"
	"github.com/fwojciec/ragscrape/htmltomarkdown"
	rshttp "github.com/fwojciec/ragscrape/http"
	"github.com/fwojciec/ragscrape/pipeline"
	"github.com/fwojciec/ragscrape/readability"
	rsslog "github.com/fwojciec/ragscrape/slog"
	"github.com/fwojciec/ragscrape/split"
	"github.com/fwojciec/ragscrape/trafilatura"
	"google.golang.org/genai"
)

// newIsolator returns the boilerplate removal strategy named in cfg.
func newIsolator(cfg ragscrape.ExtractConfig, logger *slog.Logger) ragscrape.ContentIsolator {
	var isolator ragscrape.ContentIsolator
	switch cfg.Isolator {
	case "trafilatura":
		isolator = trafilatura.NewIsolator(cfg.KeepTables)
	case "readability":
		isolator = readability.NewIsolator()
	case "auto":
		isolator = readability.NewFallback(goquery.NewIsolator())
	default:
		isolator = goquery.NewIsolator()
	}
	return rsslog.NewLoggingIsolator(isolator, cfg.Isolator, logger)
}

func newExtractor(cfg ragscrape.ExtractConfig, logger *slog.Logger) *goquery.Extractor {
	converter := htmltomarkdown.NewConverter(
		htmltomarkdown.WithLinks(cfg.KeepLinks),
		htmltomarkdown.WithTables(cfg.KeepTables),
	)
	return goquery.NewExtractor(newIsolator(cfg, logger), converter, ragscrape.CleanOptions{
		RemoveEmails:  cfg.RemoveEmails,
		MinLineLength: cfg.MinLineLength,
	})
}

// newCrawler wires the fetch side of a scrape.
func newCrawler(cfg ragscrape.Config, logger *slog.Logger) *crawl.Crawler {
	fetcher := rshttp.NewFetcher(
		rshttp.WithTimeout(cfg.Crawl.Timeout),
		rshttp.WithUserAgent(cfg.Crawl.UserAgent),
	)
	c := &crawl.Crawler{
		Fetcher:   rsslog.NewLoggingFetcher(fetcher, logger),
		Extractor: newExtractor(cfg.Extract, logger),
		Store:     fs.NewContentStore(cfg.Storage.HTMLDir),
		Delayer:   crawl.Delayer{Delay: cfg.Crawl.Delay},
		Logger:    logger,
	}
	if cfg.Crawl.UseSitemap {
		sitemaps := rshttp.NewSitemapService(nil, cfg.Crawl.UserAgent)
		c.Sitemaps = rsslog.NewLoggingSitemapService(sitemaps, logger)
	}
	return c
}

func newRobotsLoader(cfg ragscrape.Config, logger *slog.Logger) *rshttp.RobotsLoader {
	robots := rshttp.NewRobotsLoader(nil, cfg.Crawl.UserAgent)
	robots.Logger = logger
	return robots
}

// newEmbeddingModel returns the configured embedding provider. Gemini needs
// GEMINI_API_KEY.
func newEmbeddingModel(ctx context.Context, cfg ragscrape.EmbedConfig) (ragscrape.EmbeddingModel, error) {
	if cfg.Provider == "hash" {
		return hashembed.NewEmbedder(cfg.Dimension), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey or use --embedder=hash")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "failed to connect to Gemini API: %v", err)
	}
	return gemini.NewEmbedder(client, cfg.Model, cfg.Dimension), nil
}

// newPipeline wires process, embed and index for cfg.
func newPipeline(ctx context.Context, cfg ragscrape.Config, countTokens bool, logger *slog.Logger) (*pipeline.Pipeline, error) {
	model, err := newEmbeddingModel(ctx, cfg.Embed)
	if err != nil {
		return nil, err
	}

	generator := embed.NewGenerator(rsslog.NewLoggingEmbeddingModel(model, logger), cfg.Embed.BatchSize)
	generator.Normalize = cfg.Embed.Normalize
	generator.Concurrency = cfg.Embed.Concurrency
	generator.Limiter = embed.NewLimiter(cfg.Embed.RequestsPerSecond)
	generator.Logger = logger

	p := &pipeline.Pipeline{
		Content:   fs.NewContentStore(cfg.Storage.HTMLDir),
		Extractor: newExtractor(cfg.Extract, logger),
		Chunker:   split.NewSplitter(cfg.Chunk.Size, cfg.Chunk.Overlap, cfg.Extract.MinContentLength),
		Generator: generator,
		Index:     newIndexStore(cfg, logger),
		Logger:    logger,
	}
	if countTokens {
		tokens, err := gemini.NewTokenCounter("")
		if err != nil {
			return nil, err
		}
		p.Tokens = tokens
	}
	return p, nil
}

func newIndexStore(cfg ragscrape.Config, logger *slog.Logger) ragscrape.IndexStore {
	return rsslog.NewLoggingIndexStore(fs.NewIndexStore(cfg.Storage.IndexPath, cfg.Storage.MetadataPath), logger)
}
