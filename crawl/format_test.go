package crawl_test

import (
	"testing"

	"github.com/fwojciec/ragscrape/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		url   string
		width int
		want  string
	}{
		{"fits", "https://x.com", 50, "https://x.com"},
		{"exact width", "https://example.com", 19, "https://example.com"},
		{"keeps the tail", "https://example.com/very/long/path/to/documentation", 20, ".../to/documentation"},
		{"zero width", "https://example.com", 0, ""},
		{"negative width", "https://example.com", -1, ""},
		{"no room for ellipsis", "https://example.com", 3, "htt"},
		{"short url narrow width", "ab", 3, "ab"},
		{"counts runes", "https://example.com/ドキュメント/概要", 10, "...ュメント/概要"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := crawl.TruncateURL(tt.url, tt.width)

			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.LessOrEqual(t, len([]rune(got)), tt.width)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{
		0:                  "0 B",
		512:                "512 B",
		1536:               "1.5 KB",
		2 << 20:            "2.0 MB",
		3 << 30:            "3.0 GB",
		1024*1024*1024 - 1: "1024.0 MB",
	} {
		assert.Equal(t, want, crawl.FormatBytes(n), n)
	}
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1500))
	assert.Equal(t, "~10k tokens", crawl.FormatTokens(10000))
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no pages visited", crawl.FormatResult(nil))
	assert.Equal(t, "visited 3 pages, saved 3 (2.0 KB)",
		crawl.FormatResult(&crawl.Result{Visited: 3, Saved: 3, Bytes: 2048}))
	assert.Equal(t, "visited 4 pages, saved 2 (100 B), 2 failed",
		crawl.FormatResult(&crawl.Result{Visited: 4, Saved: 2, Failed: 2, Bytes: 100}))
}
