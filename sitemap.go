package ragscrape

import "context"

// SitemapService lists page URLs a site advertises in its sitemaps. The
// crawl uses them as extra seeds, which still pass the Policy and Frontier.
type SitemapService interface {
	// DiscoverURLs returns the page URLs reachable from baseURL's sitemaps
	// in document order, without duplicates. A site without sitemaps
	// yields an empty list and no error.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
