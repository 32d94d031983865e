package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Release Notes - Example</title></head>
<body>
<nav class="main-nav"><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Release Notes</h1>
<p>This release focuses on the crawler and brings substantive improvements to link handling across large sites.</p>
<p>The index writer now validates that every vector shares one dimension before anything is written to disk.</p>
<pre><code>ragscrape scrape example.com --max-pages 50</code></pre>
</article>
<footer>Copyright 2024 Example Corp</footer>
</body>
</html>`

func TestIsolator_Isolate(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewIsolator(true).Isolate(articlePage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "substantive improvements")
		assert.Contains(t, result.ContentHTML, "--max-pages 50")
	})

	t.Run("drops navigation and footer", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewIsolator(true).Isolate(articlePage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Example Corp")
	})

	t.Run("finds a title", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewIsolator(false).Isolate(articlePage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewIsolator(true).Isolate("")

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})
}
