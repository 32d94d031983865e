package ragscrape_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := ragscrape.DefaultConfig("example.com", "out")

	assert.Equal(t, []string{"https://example.com"}, cfg.Crawl.StartURLs)
	assert.Equal(t, []string{"example.com"}, cfg.Crawl.AllowedDomains)
	assert.Equal(t, 1000, cfg.Crawl.MaxPages)
	assert.True(t, cfg.Crawl.RespectRobots)
	assert.Equal(t, 50, cfg.Extract.MinContentLength)
	assert.Equal(t, 1000, cfg.Chunk.Size)
	assert.Equal(t, 200, cfg.Chunk.Overlap)
	assert.Equal(t, 32, cfg.Embed.BatchSize)
	assert.Equal(t, filepath.Join("out", "index"), cfg.Storage.IndexPath)
	assert.Equal(t, filepath.Join("out", "metadata.json"), cfg.Storage.MetadataPath)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*ragscrape.Config)
	}{
		{"empty domain", func(c *ragscrape.Config) { c.Crawl.Domain = "" }},
		{"domain with scheme", func(c *ragscrape.Config) { c.Crawl.Domain = "https://example.com" }},
		{"no start URLs", func(c *ragscrape.Config) { c.Crawl.StartURLs = nil }},
		{"zero max pages", func(c *ragscrape.Config) { c.Crawl.MaxPages = 0 }},
		{"negative depth", func(c *ragscrape.Config) { c.Crawl.MaxDepth = -1 }},
		{"zero timeout", func(c *ragscrape.Config) { c.Crawl.Timeout = 0 }},
		{"unknown extractor", func(c *ragscrape.Config) { c.Extract.Isolator = "magic" }},
		{"overlap equals size", func(c *ragscrape.Config) { c.Chunk.Overlap = c.Chunk.Size }},
		{"unknown embedder", func(c *ragscrape.Config) { c.Embed.Provider = "bert" }},
		{"zero batch size", func(c *ragscrape.Config) { c.Embed.BatchSize = 0 }},
		{"missing index path", func(c *ragscrape.Config) { c.Storage.IndexPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := ragscrape.DefaultConfig("example.com", t.TempDir())
			tt.modify(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
		})
	}
}
