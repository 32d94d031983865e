package ragscrape

import (
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultUserAgent        = "RAG Scraper Bot (+https://example.com/bot)"
	DefaultMaxPages         = 1000
	DefaultDelay            = 500 * time.Millisecond
	DefaultTimeout          = 30 * time.Second
	DefaultMinContentLength = 50
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultBatchSize        = 32
	DefaultEmbeddingModel   = "gemini-embedding-001"
)

// Config is the resolved configuration of a scrape run.
type Config struct {
	Crawl     CrawlConfig
	Extract   ExtractConfig
	Chunk     ChunkConfig
	Embed     EmbedConfig
	Storage   StorageConfig
	OutputDir string
}

// CrawlConfig configures the frontier, politeness policy and fetcher.
type CrawlConfig struct {
	Domain         string
	StartURLs      []string
	AllowedDomains []string
	MaxPages       int
	// MaxDepth limits link depth from the start URLs. Zero means unlimited.
	MaxDepth      int
	RespectRobots bool
	UseSitemap    bool
	UserAgent     string
	Delay         time.Duration
	Timeout       time.Duration
}

// ExtractConfig configures text extraction and cleaning.
type ExtractConfig struct {
	// Isolator selects the boilerplate removal strategy:
	// "selectors" (default), "trafilatura", "readability" or "auto"
	// (selectors with a readability fallback).
	Isolator         string
	KeepLinks        bool
	KeepTables       bool
	RemoveEmails     bool
	MinLineLength    int
	MinContentLength int
}

// ChunkConfig configures the text splitter.
type ChunkConfig struct {
	Size    int
	Overlap int
}

// EmbedConfig configures embedding generation.
type EmbedConfig struct {
	// Provider is "gemini" or "hash".
	Provider    string
	Model       string
	Dimension   int
	BatchSize   int
	Normalize   bool
	Concurrency int
	// RequestsPerSecond caps calls to the embedding model. Zero means unlimited.
	RequestsPerSecond float64
}

// StorageConfig configures where artifacts are written.
type StorageConfig struct {
	IndexPath    string
	MetadataPath string
	HTMLDir      string
	CatalogPath  string
}

// DefaultConfig returns the default configuration for crawling domain and
// writing artifacts under outputDir.
func DefaultConfig(domain, outputDir string) Config {
	if outputDir == "" {
		outputDir = "data"
	}
	return Config{
		Crawl: CrawlConfig{
			Domain:         domain,
			StartURLs:      []string{"https://" + domain},
			AllowedDomains: []string{domain},
			MaxPages:       DefaultMaxPages,
			RespectRobots:  true,
			UserAgent:      DefaultUserAgent,
			Delay:          DefaultDelay,
			Timeout:        DefaultTimeout,
		},
		Extract: ExtractConfig{
			Isolator:         "selectors",
			KeepLinks:        true,
			KeepTables:       true,
			RemoveEmails:     true,
			MinContentLength: DefaultMinContentLength,
		},
		Chunk: ChunkConfig{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Embed: EmbedConfig{
			Provider:    "gemini",
			Model:       DefaultEmbeddingModel,
			Dimension:   768,
			BatchSize:   DefaultBatchSize,
			Normalize:   true,
			Concurrency: 1,
		},
		Storage: StorageConfig{
			IndexPath:    filepath.Join(outputDir, "index"),
			MetadataPath: filepath.Join(outputDir, "metadata.json"),
			HTMLDir:      filepath.Join(outputDir, "html"),
			CatalogPath:  filepath.Join(outputDir, "ragscrape.db"),
		},
		OutputDir: outputDir,
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Crawl.Domain) == "" {
		return Errorf(EINVALID, "domain required")
	}
	if strings.Contains(c.Crawl.Domain, "://") {
		return Errorf(EINVALID, "domain must not include a scheme: %q", c.Crawl.Domain)
	}
	if len(c.Crawl.StartURLs) == 0 {
		return Errorf(EINVALID, "at least one start URL required")
	}
	if c.Crawl.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if c.Crawl.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.Crawl.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	if c.Crawl.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	switch c.Extract.Isolator {
	case "selectors", "trafilatura", "readability", "auto":
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extract.Isolator)
	}
	if c.Extract.MinContentLength < 0 || c.Extract.MinLineLength < 0 {
		return Errorf(EINVALID, "minimum lengths must not be negative")
	}
	if c.Chunk.Size <= 0 {
		return Errorf(EINVALID, "chunk size must be positive")
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size {
		return Errorf(EINVALID, "chunk overlap must be in [0, chunk size)")
	}
	switch c.Embed.Provider {
	case "gemini", "hash":
	default:
		return Errorf(EINVALID, "unknown embedder %q", c.Embed.Provider)
	}
	if c.Embed.BatchSize <= 0 {
		return Errorf(EINVALID, "batch size must be positive")
	}
	if c.Embed.Dimension <= 0 {
		return Errorf(EINVALID, "embedding dimension must be positive")
	}
	if c.Storage.IndexPath == "" || c.Storage.MetadataPath == "" {
		return Errorf(EINVALID, "index and metadata paths required")
	}
	return nil
}
