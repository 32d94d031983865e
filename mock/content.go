package mock

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

var _ ragscrape.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of ragscrape.ContentStore.
type ContentStore struct {
	SaveFn func(ctx context.Context, url, html string) (string, error)
	LoadFn func(ctx context.Context, ref string) (string, error)
}

func (s *ContentStore) Save(ctx context.Context, url, html string) (string, error) {
	return s.SaveFn(ctx, url, html)
}

func (s *ContentStore) Load(ctx context.Context, ref string) (string, error) {
	return s.LoadFn(ctx, ref)
}
