package ragscrape_test

import (
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips query and fragment", "https://example.com/docs/a?x=1#top", "https://example.com/docs/a"},
		{"empty path becomes root", "https://example.com", "https://example.com/"},
		{"lowercases scheme and host", "HTTPS://Example.COM/Docs", "https://example.com/Docs"},
		{"keeps port", "http://127.0.0.1:8080/a/b/", "http://127.0.0.1:8080/a/b/"},
		{"trims whitespace", "  https://example.com/a  ", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ragscrape.CanonicalURL(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalURL_Rejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"mailto:me@example.com", "/relative/path", "ftp://example.com/file", "javascript:void(0)"} {
		_, err := ragscrape.CanonicalURL(in)
		require.Error(t, err, in)
		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	}
}

func TestURLHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", ragscrape.URLHost("https://Example.com/a"))
	assert.Equal(t, "127.0.0.1:9000", ragscrape.URLHost("http://127.0.0.1:9000/"))
	assert.Empty(t, ragscrape.URLHost("://bad"))
}
