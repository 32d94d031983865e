// Package trafilatura isolates main page content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/ragscrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Isolator implements ragscrape.ContentIsolator at compile time.
var _ ragscrape.ContentIsolator = (*Isolator)(nil)

// Isolator wraps go-trafilatura to extract the main content from HTML.
type Isolator struct {
	opts trafilatura.Options
}

// NewIsolator creates an Isolator. Comments are always excluded; tables
// are kept when keepTables is true.
func NewIsolator(keepTables bool) *Isolator {
	return &Isolator{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			ExcludeTables:   !keepTables,
		},
	}
}

// Isolate processes raw HTML and returns the main content.
func (i *Isolator) Isolate(rawHTML string) (*ragscrape.IsolateResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), i.opts)
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, ragscrape.Errorf(ragscrape.EINTERNAL, "render content: %v", err)
		}
	}

	return &ragscrape.IsolateResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
