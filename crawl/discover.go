package crawl

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

// Discoverer runs the metadata-only crawl that precedes interactive
// selection. It walks the frontier exactly like the standard loop but
// persists nothing.
type Discoverer struct {
	Crawler *Crawler
}

// Discover walks the session frontier up to the page budget and returns
// a PageRecord for every page that was fetched and inspected, in visit
// order. The records are also kept on the session.
func (d *Discoverer) Discover(ctx context.Context, s *Session, progress ProgressFunc) ([]ragscrape.PageRecord, error) {
	if _, err := d.Crawler.walk(ctx, s, progress, nil); err != nil {
		return s.Records, err
	}
	return s.Records, nil
}
