package ragscrape

import (
	"context"
	"unicode/utf8"
)

// Placeholders used when a page lacks a title or description.
const (
	NoTitle       = "No title"
	NoDescription = "No description"
)

// ExcerptLength is the maximum number of characters kept in descriptions
// and chunk excerpts before an ellipsis is appended.
const ExcerptLength = 100

// PageRecord summarizes a page seen during discovery. It is produced once per
// successfully fetched page and never mutated afterward.
type PageRecord struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentSize int    `json:"content_size"`
	HTMLSize    int    `json:"html_size"`
}

// PageMetadata is the metadata extracted from a page's head.
type PageMetadata struct {
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
}

// ContentEntry maps a URL to the reference of its persisted raw HTML.
type ContentEntry struct {
	URL string
	Ref string
}

// ContentMap is an insertion-ordered mapping from URL to persisted raw
// content. It only grows.
type ContentMap struct {
	entries []ContentEntry
	index   map[string]int
}

// NewContentMap returns an empty ContentMap.
func NewContentMap() *ContentMap {
	return &ContentMap{index: make(map[string]int)}
}

// Put records ref for url. A URL that is already present keeps its position
// and has its reference replaced.
func (m *ContentMap) Put(url, ref string) {
	if i, ok := m.index[url]; ok {
		m.entries[i].Ref = ref
		return
	}
	m.index[url] = len(m.entries)
	m.entries = append(m.entries, ContentEntry{URL: url, Ref: ref})
}

// Get returns the reference stored for url.
func (m *ContentMap) Get(url string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[url]
	if !ok {
		return "", false
	}
	return m.entries[i].Ref, true
}

// Len returns the number of entries. A nil map has length zero.
func (m *ContentMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the entries in insertion order.
func (m *ContentMap) Entries() []ContentEntry {
	if m == nil {
		return nil
	}
	return append([]ContentEntry(nil), m.entries...)
}

// URLs returns the URLs in insertion order.
func (m *ContentMap) URLs() []string {
	if m == nil {
		return nil
	}
	urls := make([]string, len(m.entries))
	for i, e := range m.entries {
		urls[i] = e.URL
	}
	return urls
}

// ContentStore persists raw HTML, one artifact per URL.
type ContentStore interface {
	// Save writes html for url and returns a reference that Load accepts.
	Save(ctx context.Context, url string, html string) (ref string, err error)

	// Load returns the HTML stored under ref.
	// Returns ENOTFOUND if nothing is stored under ref.
	Load(ctx context.Context, ref string) (string, error)
}

// Excerpt truncates s to n characters, appending "..." when anything was cut.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
