// Package readability isolates main page content with go-readability.
package readability

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/ragscrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Isolator and Fallback implement ragscrape.ContentIsolator.
var (
	_ ragscrape.ContentIsolator = (*Isolator)(nil)
	_ ragscrape.ContentIsolator = (*Fallback)(nil)
)

// Isolator wraps go-readability to extract the main content from HTML.
type Isolator struct{}

// NewIsolator creates a new Isolator.
func NewIsolator() *Isolator {
	return &Isolator{}
}

// Isolate processes raw HTML and returns the main content.
func (i *Isolator) Isolate(rawHTML string) (*ragscrape.IsolateResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "readability: %v", err)
	}

	return &ragscrape.IsolateResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: strings.TrimSpace(article.Content),
	}, nil
}

// DefaultFallbackMinLength is the content size below which Fallback
// consults readability.
const DefaultFallbackMinLength = 200

// Fallback runs Primary first and switches to readability when the primary
// result is missing or has less than MinLength characters of content HTML.
type Fallback struct {
	Primary     ragscrape.ContentIsolator
	Readability *Isolator
	MinLength   int
}

// NewFallback wraps primary with a readability fallback.
func NewFallback(primary ragscrape.ContentIsolator) *Fallback {
	return &Fallback{
		Primary:     primary,
		Readability: NewIsolator(),
		MinLength:   DefaultFallbackMinLength,
	}
}

// Isolate returns the primary result unless it is negligible.
func (f *Fallback) Isolate(rawHTML string) (*ragscrape.IsolateResult, error) {
	primary, err := f.Primary.Isolate(rawHTML)
	if err == nil && utf8.RuneCountInString(primary.ContentHTML) >= f.MinLength {
		return primary, nil
	}

	fallback, ferr := f.Readability.Isolate(rawHTML)
	if ferr != nil {
		if err == nil {
			return primary, nil
		}
		return nil, err
	}
	if fallback.Title == "" && primary != nil {
		fallback.Title = primary.Title
	}
	return fallback, nil
}
