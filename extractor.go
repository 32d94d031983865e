package ragscrape

// IsolateResult holds the main content of a page with boilerplate removed.
type IsolateResult struct {
	// Title is the page title found by the isolator, if any.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads, comments) has been removed.
	ContentHTML string
}

// ContentIsolator removes boilerplate from HTML pages.
type ContentIsolator interface {
	// Isolate processes raw HTML and returns the main content.
	// The content HTML has boilerplate removed but preserves structure.
	Isolate(html string) (*IsolateResult, error)
}

// ExtractResult is everything the extractor learns from one page.
type ExtractResult struct {
	Metadata PageMetadata

	// Text is the cleaned plain text of the page.
	Text string

	// Links are the canonical outbound links in document order.
	Links []string
}

// InspectResult is the discovery-only view of a page.
type InspectResult struct {
	Record PageRecord
	Links  []string
}

// Extractor parses fetched HTML into metadata, cleaned text and links.
type Extractor interface {
	// Extract returns metadata, cleaned text and outbound links of the page
	// fetched from pageURL.
	Extract(html string, pageURL string) (*ExtractResult, error)

	// Inspect returns the page record and outbound links without
	// converting content to text.
	Inspect(html string, pageURL string) (*InspectResult, error)
}
