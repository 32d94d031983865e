package ragscrape

import "context"

// Fetcher downloads one page. Implementations do not retry; the crawl loop
// logs and skips failed pages.
type Fetcher interface {
	// Fetch returns the body of url. Non-200 responses, non-textual
	// content and transport failures are EFETCH errors.
	Fetch(ctx context.Context, url string) (html string, err error)
}
