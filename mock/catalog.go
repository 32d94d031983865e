package mock

import (
	"context"

	"github.com/fwojciec/ragscrape"
)

var _ ragscrape.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of ragscrape.CatalogService.
type CatalogService struct {
	CreateSessionFn     func(ctx context.Context, session *ragscrape.Session) error
	FindSessionByIDFn   func(ctx context.Context, id string) (*ragscrape.Session, error)
	FindLatestSessionFn func(ctx context.Context, domain string) (*ragscrape.Session, error)
	SavePageRecordsFn   func(ctx context.Context, sessionID string, records []ragscrape.PageRecord) error
	FindPageRecordsFn   func(ctx context.Context, sessionID string) ([]ragscrape.PageRecord, error)
	SaveContentFn       func(ctx context.Context, sessionID string, content *ragscrape.ContentMap) error
	FindContentFn       func(ctx context.Context, sessionID string) (*ragscrape.ContentMap, error)
}

func (s *CatalogService) CreateSession(ctx context.Context, session *ragscrape.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *CatalogService) FindSessionByID(ctx context.Context, id string) (*ragscrape.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *CatalogService) FindLatestSession(ctx context.Context, domain string) (*ragscrape.Session, error) {
	return s.FindLatestSessionFn(ctx, domain)
}

func (s *CatalogService) SavePageRecords(ctx context.Context, sessionID string, records []ragscrape.PageRecord) error {
	return s.SavePageRecordsFn(ctx, sessionID, records)
}

func (s *CatalogService) FindPageRecords(ctx context.Context, sessionID string) ([]ragscrape.PageRecord, error) {
	return s.FindPageRecordsFn(ctx, sessionID)
}

func (s *CatalogService) SaveContent(ctx context.Context, sessionID string, content *ragscrape.ContentMap) error {
	return s.SaveContentFn(ctx, sessionID, content)
}

func (s *CatalogService) FindContent(ctx context.Context, sessionID string) (*ragscrape.ContentMap, error) {
	return s.FindContentFn(ctx, sessionID)
}
