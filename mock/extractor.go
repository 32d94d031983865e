package mock

import "github.com/fwojciec/ragscrape"

var (
	_ ragscrape.Extractor       = (*Extractor)(nil)
	_ ragscrape.ContentIsolator = (*ContentIsolator)(nil)
)

// Extractor is a mock implementation of ragscrape.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*ragscrape.ExtractResult, error)
	InspectFn func(html, pageURL string) (*ragscrape.InspectResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*ragscrape.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

func (e *Extractor) Inspect(html, pageURL string) (*ragscrape.InspectResult, error) {
	return e.InspectFn(html, pageURL)
}

// ContentIsolator is a mock implementation of ragscrape.ContentIsolator.
type ContentIsolator struct {
	IsolateFn func(html string) (*ragscrape.IsolateResult, error)
}

func (i *ContentIsolator) Isolate(html string) (*ragscrape.IsolateResult, error) {
	return i.IsolateFn(html)
}
