package ragscrape

import (
	"context"
	"time"
)

// CrawlMode distinguishes the two ways a session collects content.
type CrawlMode string

// CrawlMode constants.
const (
	ModeStandard    CrawlMode = "standard"
	ModeInteractive CrawlMode = "interactive"
)

// Session is one crawl run against a domain.
type Session struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Mode      CrawlMode `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the session contains invalid fields.
func (s *Session) Validate() error {
	if s.Domain == "" {
		return Errorf(EINVALID, "session domain required")
	}
	switch s.Mode {
	case ModeStandard, ModeInteractive:
	default:
		return Errorf(EINVALID, "unknown session mode %q", s.Mode)
	}
	return nil
}

// CatalogService records crawl sessions, their discovered pages and their
// content maps so that persisted raw content can be processed again later.
type CatalogService interface {
	// CreateSession assigns an ID and start time and stores the session.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// FindLatestSession retrieves the most recent session for domain.
	// Returns ENOTFOUND if the domain has no sessions.
	FindLatestSession(ctx context.Context, domain string) (*Session, error)

	// SavePageRecords stores the discovered pages of a session in order.
	SavePageRecords(ctx context.Context, sessionID string, records []PageRecord) error

	// FindPageRecords returns the discovered pages of a session in discovery order.
	FindPageRecords(ctx context.Context, sessionID string) ([]PageRecord, error)

	// SaveContent stores a session's content map.
	SaveContent(ctx context.Context, sessionID string, content *ContentMap) error

	// FindContent returns a session's content map in fetch order.
	FindContent(ctx context.Context, sessionID string) (*ContentMap, error)
}
