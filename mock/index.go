package mock

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

var _ ragscrape.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of ragscrape.IndexStore.
type IndexStore struct {
	SaveFn func(ctx context.Context, pages []ragscrape.EmbeddedPage) (*ragscrape.IndexSummary, error)
	LoadFn func(ctx context.Context) (*ragscrape.LoadedIndex, error)
}

func (s *IndexStore) Save(ctx context.Context, pages []ragscrape.EmbeddedPage) (*ragscrape.IndexSummary, error) {
	return s.SaveFn(ctx, pages)
}

func (s *IndexStore) Load(ctx context.Context) (*ragscrape.LoadedIndex, error) {
	return s.LoadFn(ctx)
}
