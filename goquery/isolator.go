// Package goquery implements page parsing on top of goquery: metadata and
// link extraction, page inspection for discovery, and selector-based
// boilerplate removal.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragscrape"
)

// Ensure Isolator implements ragscrape.ContentIsolator at compile time.
var _ ragscrape.ContentIsolator = (*Isolator)(nil)

// DefaultBoilerplate lists the elements removed before text conversion.
var DefaultBoilerplate = []string{
	"nav", "footer", "aside",
	".sidebar", ".ads", ".ad", ".advertisement",
	".comments", "#comments",
	"script", "style", "noscript",
}

// Isolator strips boilerplate elements by CSS selector. When the page was
// produced by a known documentation framework it first narrows the page to
// that framework's content container.
type Isolator struct {
	Boilerplate     []string
	DetectFramework bool
}

// NewIsolator returns an Isolator with the default boilerplate selectors
// and framework detection enabled.
func NewIsolator() *Isolator {
	return &Isolator{
		Boilerplate:     DefaultBoilerplate,
		DetectFramework: true,
	}
}

// Isolate returns the page title and the inner HTML of the content root
// with boilerplate removed.
func (i *Isolator) Isolate(html string) (*ragscrape.IsolateResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "empty HTML input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	root := i.contentRoot(doc)
	if len(i.Boilerplate) > 0 {
		root.Find(strings.Join(i.Boilerplate, ", ")).Remove()
	}

	content, err := root.Html()
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINTERNAL, "failed to render content: %v", err)
	}

	return &ragscrape.IsolateResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: strings.TrimSpace(content),
	}, nil
}

func (i *Isolator) contentRoot(doc *goquery.Document) *goquery.Selection {
	if i.DetectFramework {
		for _, selector := range contentRoots[detect(doc)] {
			if sel := doc.Find(selector).First(); sel.Length() > 0 {
				return sel
			}
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
