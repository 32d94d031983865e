package mock

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

var _ ragscrape.Chooser = (*Chooser)(nil)

// Chooser is a mock implementation of ragscrape.Chooser.
type Chooser struct {
	PresentFn func(ctx context.Context, records []ragscrape.PageRecord) error
	ChooseFn  func(ctx context.Context) (ragscrape.SelectionMode, error)
	IndicesFn func(ctx context.Context) (string, error)
	KeywordFn func(ctx context.Context) (string, error)
	ConfirmFn func(ctx context.Context, keyword string, matches []ragscrape.PageRecord) (bool, error)
}

func (c *Chooser) Present(ctx context.Context, records []ragscrape.PageRecord) error {
	return c.PresentFn(ctx, records)
}

func (c *Chooser) Choose(ctx context.Context) (ragscrape.SelectionMode, error) {
	return c.ChooseFn(ctx)
}

func (c *Chooser) Indices(ctx context.Context) (string, error) {
	return c.IndicesFn(ctx)
}

func (c *Chooser) Keyword(ctx context.Context) (string, error) {
	return c.KeywordFn(ctx)
}

func (c *Chooser) Confirm(ctx context.Context, keyword string, matches []ragscrape.PageRecord) (bool, error) {
	return c.ConfirmFn(ctx, keyword, matches)
}
