package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/mock"
	"github.com/fwojciec/ragscrape/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h2>Subheading Level Two</h2>
<p>This is the important article paragraph text that readability should keep in its output because it is long enough to score.</p>
<p>A second paragraph adds more weight to the article container so that it is clearly the main content of the page.</p>
<ul><li>First item</li><li>Second item</li></ul>
</article>
<footer>Footer copyright text</footer>
</body>
</html>`

func TestIsolator_Isolate(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewIsolator().Isolate("")

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewIsolator().Isolate(articlePage)

		require.NoError(t, err)
		assert.Equal(t, "Page Title", result.Title)
	})

	t.Run("keeps article content and structure", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewIsolator().Isolate(articlePage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important article paragraph text")
		assert.Contains(t, result.ContentHTML, "<li")
	})

	t.Run("removes navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewIsolator().Isolate(articlePage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Home Nav Link")
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})
}

func TestFallback_Isolate(t *testing.T) {
	t.Parallel()

	t.Run("returns primary result when it is substantial", func(t *testing.T) {
		t.Parallel()

		primary := &mock.ContentIsolator{
			IsolateFn: func(_ string) (*ragscrape.IsolateResult, error) {
				return &ragscrape.IsolateResult{Title: "Primary", ContentHTML: strings.Repeat("x", 300)}, nil
			},
		}

		result, err := readability.NewFallback(primary).Isolate(articlePage)

		require.NoError(t, err)
		assert.Equal(t, "Primary", result.Title)
	})

	t.Run("falls back when primary content is negligible", func(t *testing.T) {
		t.Parallel()

		primary := &mock.ContentIsolator{
			IsolateFn: func(_ string) (*ragscrape.IsolateResult, error) {
				return &ragscrape.IsolateResult{Title: "Primary", ContentHTML: "<p>tiny</p>"}, nil
			},
		}

		result, err := readability.NewFallback(primary).Isolate(articlePage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important article paragraph text")
	})

	t.Run("falls back when primary fails", func(t *testing.T) {
		t.Parallel()

		primary := &mock.ContentIsolator{
			IsolateFn: func(_ string) (*ragscrape.IsolateResult, error) {
				return nil, ragscrape.Errorf(ragscrape.EINVALID, "nope")
			},
		}

		result, err := readability.NewFallback(primary).Isolate(articlePage)

		require.NoError(t, err)
		assert.Equal(t, "Page Title", result.Title)
	})

	t.Run("returns primary error when both fail", func(t *testing.T) {
		t.Parallel()

		primary := &mock.ContentIsolator{
			IsolateFn: func(_ string) (*ragscrape.IsolateResult, error) {
				return nil, ragscrape.Errorf(ragscrape.EINVALID, "primary failed")
			},
		}

		_, err := readability.NewFallback(primary).Isolate("")

		assert.Equal(t, "primary failed", ragscrape.ErrorMessage(err))
	})
}
