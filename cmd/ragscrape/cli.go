package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/fwojciec/ragscrape/pipeline"
)

// RobotsLoader returns the disallow prefixes that apply to the crawler.
type RobotsLoader interface {
	Load(ctx context.Context, domain string) []string
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Catalog  ragscrape.CatalogService
	Robots   RobotsLoader
	Crawler  *crawl.Crawler
	Chooser  ragscrape.Chooser
	Pipeline *pipeline.Pipeline
	Index    ragscrape.IndexStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   kong.ConfigFlag `help:"TOML configuration file" env:"RAGSCRAPE_CONFIG" type:"path"`
	LogLevel string          `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"RAGSCRAPE_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`

	Scrape  ScrapeCmd  `cmd:"" help:"Crawl a domain and index its pages"`
	Process ProcessCmd `cmd:"" help:"Re-run the pipeline on pages fetched by an earlier session"`
	Pages   PagesCmd   `cmd:"" help:"List pages discovered by a session"`
	Inspect InspectCmd `cmd:"" help:"Show what the persisted index holds"`
}

// CrawlFlags configure the frontier, politeness policy and fetcher.
type CrawlFlags struct {
	MaxPages      int           `name:"max-pages" default:"1000" env:"RAGSCRAPE_MAX_PAGES" help:"Maximum number of pages to visit"`
	MaxDepth      int           `name:"max-depth" default:"0" env:"RAGSCRAPE_MAX_DEPTH" help:"Maximum link depth from the start URL (0 = unlimited)"`
	Delay         time.Duration `default:"500ms" env:"RAGSCRAPE_DELAY" help:"Pause before every request"`
	Timeout       time.Duration `default:"30s" env:"RAGSCRAPE_TIMEOUT" help:"Per-request timeout"`
	RespectRobots bool          `name:"respect-robots" default:"true" negatable:"" env:"RAGSCRAPE_RESPECT_ROBOTS" help:"Honor robots.txt disallow rules"`
	UseSitemap    bool          `name:"use-sitemap" env:"RAGSCRAPE_USE_SITEMAP" help:"Seed the crawl from the site's sitemaps"`
	UserAgent     string        `name:"user-agent" default:"RAG Scraper Bot (+https://example.com/bot)" env:"RAGSCRAPE_USER_AGENT" help:"User-Agent header and robots.txt identity"`
	AllowDomain   []string      `name:"allow-domain" env:"RAGSCRAPE_ALLOW_DOMAINS" help:"Additional hosts links may lead to (repeatable)"`
}

// PipelineFlags configure extraction, chunking, embedding and storage.
type PipelineFlags struct {
	OutputDir string `name:"output-dir" short:"o" default:"data" type:"path" env:"RAGSCRAPE_OUTPUT_DIR" help:"Directory for raw pages, index and catalog"`

	Extractor     string `enum:"selectors,trafilatura,readability,auto" default:"selectors" env:"RAGSCRAPE_EXTRACTOR" help:"Boilerplate removal strategy"`
	KeepLinks     bool   `name:"keep-links" default:"true" negatable:"" help:"Keep link markup in extracted text"`
	KeepTables    bool   `name:"keep-tables" default:"true" negatable:"" help:"Keep table markup in extracted text"`
	RemoveEmails  bool   `name:"remove-emails" default:"true" negatable:"" help:"Replace email addresses with a placeholder"`
	MinLineLength int    `name:"min-line-length" default:"0" help:"Drop lines shorter than this many characters"`
	MinContent    int    `name:"min-content-length" default:"50" help:"Skip pages with less text than this many characters"`

	ChunkSize    int `name:"chunk-size" default:"1000" env:"RAGSCRAPE_CHUNK_SIZE" help:"Maximum chunk length in characters"`
	ChunkOverlap int `name:"chunk-overlap" default:"200" env:"RAGSCRAPE_CHUNK_OVERLAP" help:"Characters shared by consecutive chunks"`

	Embedder          string  `enum:"gemini,hash" default:"gemini" env:"RAGSCRAPE_EMBEDDER" help:"Embedding provider"`
	EmbeddingModel    string  `name:"embedding-model" default:"gemini-embedding-001" env:"RAGSCRAPE_EMBEDDING_MODEL" help:"Gemini embedding model"`
	Dimension         int     `default:"768" env:"RAGSCRAPE_DIMENSION" help:"Embedding dimension"`
	BatchSize         int     `name:"batch-size" default:"32" env:"RAGSCRAPE_BATCH_SIZE" help:"Chunks per embedding request"`
	Normalize         bool    `default:"true" negatable:"" help:"Scale embeddings to unit length"`
	Concurrency       int     `default:"1" env:"RAGSCRAPE_CONCURRENCY" help:"Concurrent embedding requests"`
	RequestsPerSecond float64 `name:"requests-per-second" default:"0" env:"RAGSCRAPE_RPS" help:"Embedding request rate limit (0 = unlimited)"`
	CountTokens       bool    `name:"count-tokens" help:"Report chunk token counts (downloads the tokenizer on first use)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Domain      string `arg:"" help:"Domain to crawl, without scheme (e.g. docs.example.com)"`
	Interactive bool   `short:"i" help:"Discover pages first and choose which ones to fetch"`

	CrawlFlags    `embed:""`
	PipelineFlags `embed:""`
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	Domain  string `arg:"" help:"Domain of the session to process"`
	Session string `help:"Session ID (default: latest session of the domain)"`

	PipelineFlags `embed:""`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Domain    string `arg:"" help:"Domain of the session"`
	Session   string `help:"Session ID (default: latest session of the domain)"`
	OutputDir string `name:"output-dir" short:"o" default:"data" type:"path" env:"RAGSCRAPE_OUTPUT_DIR" help:"Directory holding the catalog"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	OutputDir string `name:"output-dir" short:"o" default:"data" type:"path" env:"RAGSCRAPE_OUTPUT_DIR" help:"Directory holding the index"`
	Limit     int    `default:"5" help:"Number of chunk records to show"`
}

// Config resolves the scrape flags into a run configuration.
func (c *ScrapeCmd) Config() ragscrape.Config {
	cfg := c.PipelineFlags.config(c.Domain)
	cfg.Crawl.MaxPages = c.MaxPages
	cfg.Crawl.MaxDepth = c.MaxDepth
	cfg.Crawl.Delay = c.Delay
	cfg.Crawl.Timeout = c.Timeout
	cfg.Crawl.RespectRobots = c.RespectRobots
	cfg.Crawl.UseSitemap = c.UseSitemap
	cfg.Crawl.UserAgent = c.UserAgent
	cfg.Crawl.AllowedDomains = append(cfg.Crawl.AllowedDomains, c.AllowDomain...)
	return cfg
}

// Config resolves the process flags into a run configuration.
func (c *ProcessCmd) Config() ragscrape.Config {
	return c.PipelineFlags.config(c.Domain)
}

func (f *PipelineFlags) config(domain string) ragscrape.Config {
	cfg := ragscrape.DefaultConfig(domain, f.OutputDir)
	cfg.Extract = ragscrape.ExtractConfig{
		Isolator:         f.Extractor,
		KeepLinks:        f.KeepLinks,
		KeepTables:       f.KeepTables,
		RemoveEmails:     f.RemoveEmails,
		MinLineLength:    f.MinLineLength,
		MinContentLength: f.MinContent,
	}
	cfg.Chunk = ragscrape.ChunkConfig{Size: f.ChunkSize, Overlap: f.ChunkOverlap}
	cfg.Embed = ragscrape.EmbedConfig{
		Provider:          f.Embedder,
		Model:             f.EmbeddingModel,
		Dimension:         f.Dimension,
		BatchSize:         f.BatchSize,
		Normalize:         f.Normalize,
		Concurrency:       f.Concurrency,
		RequestsPerSecond: f.RequestsPerSecond,
	}
	return cfg
}
