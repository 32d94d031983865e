package mock

import "github.com/fwojciec/ragscrape"

var _ ragscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of ragscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
