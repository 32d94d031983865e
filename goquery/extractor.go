package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragscrape"
)

// Ensure Extractor implements ragscrape.Extractor at compile time.
var _ ragscrape.Extractor = (*Extractor)(nil)

// mainContentSelector locates the main content when estimating page size.
const mainContentSelector = "main, article, .content, .main"

// Extractor parses pages into metadata, cleaned text and outbound links.
// Boilerplate removal and text conversion are delegated.
type Extractor struct {
	isolator  ragscrape.ContentIsolator
	converter ragscrape.Converter
	clean     ragscrape.CleanOptions
}

// NewExtractor creates an Extractor. A nil isolator defaults to NewIsolator.
func NewExtractor(isolator ragscrape.ContentIsolator, converter ragscrape.Converter, clean ragscrape.CleanOptions) *Extractor {
	if isolator == nil {
		isolator = NewIsolator()
	}
	return &Extractor{
		isolator:  isolator,
		converter: converter,
		clean:     clean,
	}
}

// Extract returns the page metadata, its cleaned text and canonical
// outbound links in document order.
func (e *Extractor) Extract(html string, pageURL string) (*ragscrape.ExtractResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	meta := Metadata(doc, pageURL)
	links := Links(doc, pageURL)

	isolated, err := e.isolator.Isolate(html)
	if err != nil {
		return nil, err
	}
	if meta.Title == "" {
		meta.Title = isolated.Title
	}

	var text string
	if strings.TrimSpace(isolated.ContentHTML) != "" {
		converted, err := e.converter.Convert(isolated.ContentHTML)
		if err != nil {
			return nil, err
		}
		text = ragscrape.CleanText(converted, e.clean)
	}

	return &ragscrape.ExtractResult{
		Metadata: meta,
		Text:     text,
		Links:    links,
	}, nil
}

// Inspect returns the discovery record of a page and its outbound links.
// It does not convert content to text.
func (e *Extractor) Inspect(html string, pageURL string) (*ragscrape.InspectResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	meta := Metadata(doc, pageURL)
	record := ragscrape.PageRecord{
		URL:         pageURL,
		Title:       ragscrape.NoTitle,
		Description: ragscrape.NoDescription,
		ContentSize: contentSize(doc),
		HTMLSize:    utf8.RuneCountInString(html),
	}
	if meta.Title != "" {
		record.Title = meta.Title
	}
	if meta.Description != "" {
		record.Description = ragscrape.Excerpt(meta.Description, ragscrape.ExcerptLength)
	}

	return &ragscrape.InspectResult{
		Record: record,
		Links:  Links(doc, pageURL),
	}, nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Metadata reads the title, meta description and article publish date.
// Missing fields are left empty.
func Metadata(doc *goquery.Document, pageURL string) ragscrape.PageMetadata {
	return ragscrape.PageMetadata{
		URL:           pageURL,
		Title:         strings.TrimSpace(doc.Find("title").First().Text()),
		Description:   strings.TrimSpace(doc.Find("meta[name='description']").First().AttrOr("content", "")),
		PublishedDate: strings.TrimSpace(doc.Find("meta[property='article:published_time']").First().AttrOr("content", "")),
	}
}

// Links resolves every anchor against pageURL and returns the canonical
// http(s) URLs in document order without duplicates. Scope and policy
// filtering is left to the frontier.
func Links(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		canonical, err := ragscrape.CanonicalURL(base.ResolveReference(ref).String())
		if err != nil || seen[canonical] {
			return
		}
		seen[canonical] = true
		links = append(links, canonical)
	})
	return links
}

// contentSize counts the characters of the main content elements, falling
// back to the whole document when none exist.
func contentSize(doc *goquery.Document) int {
	var b strings.Builder
	doc.Find(mainContentSelector).Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
	})
	if b.Len() == 0 {
		return utf8.RuneCountInString(doc.Text())
	}
	return utf8.RuneCountInString(b.String())
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
