package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/ragscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ragscrape.CatalogService = (*CatalogService)(nil)

// CatalogService implements ragscrape.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateSession stores session, generating an ID and start time when unset.
func (s *CatalogService) CreateSession(ctx context.Context, session *ragscrape.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, domain, mode, started_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.Domain, string(session.Mode), session.StartedAt.UTC().Format(timeLayout))
	return err
}

// FindSessionByID retrieves a session by ID.
func (s *CatalogService) FindSessionByID(ctx context.Context, id string) (*ragscrape.Session, error) {
	return s.findSession(ctx, `
		SELECT id, domain, mode, started_at
		FROM sessions
		WHERE id = ?
	`, "session not found", id)
}

// FindLatestSession retrieves the most recently started session for domain.
func (s *CatalogService) FindLatestSession(ctx context.Context, domain string) (*ragscrape.Session, error) {
	return s.findSession(ctx, `
		SELECT id, domain, mode, started_at
		FROM sessions
		WHERE domain = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`, "no sessions for "+domain, domain)
}

func (s *CatalogService) findSession(ctx context.Context, query, notFound string, args ...any) (*ragscrape.Session, error) {
	var session ragscrape.Session
	var mode, startedAt string

	err := s.db.QueryRowContext(ctx, query, args...).Scan(&session.ID, &session.Domain, &mode, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ragscrape.Errorf(ragscrape.ENOTFOUND, "%s", notFound)
	}
	if err != nil {
		return nil, err
	}

	session.Mode = ragscrape.CrawlMode(mode)
	if session.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	return &session, nil
}

// SavePageRecords replaces the discovered pages of a session.
func (s *CatalogService) SavePageRecords(ctx context.Context, sessionID string, records []ragscrape.PageRecord) error {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (session_id, position, url, title, description, content_size, html_size)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, sessionID, i, r.URL, r.Title, r.Description, r.ContentSize, r.HTMLSize); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindPageRecords returns the discovered pages of a session in discovery order.
func (s *CatalogService) FindPageRecords(ctx context.Context, sessionID string) ([]ragscrape.PageRecord, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, description, content_size, html_size
		FROM pages
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]ragscrape.PageRecord, 0)
	for rows.Next() {
		var r ragscrape.PageRecord
		if err := rows.Scan(&r.URL, &r.Title, &r.Description, &r.ContentSize, &r.HTMLSize); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveContent replaces the content map of a session.
func (s *CatalogService) SaveContent(ctx context.Context, sessionID string, content *ragscrape.ContentMap) error {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM contents WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contents (session_id, position, url, ref)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range content.Entries() {
		if _, err := stmt.ExecContext(ctx, sessionID, i, e.URL, e.Ref); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindContent returns a session's content map in fetch order.
func (s *CatalogService) FindContent(ctx context.Context, sessionID string) (*ragscrape.ContentMap, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, ref
		FROM contents
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	content := ragscrape.NewContentMap()
	for rows.Next() {
		var url, ref string
		if err := rows.Scan(&url, &ref); err != nil {
			return nil, err
		}
		content.Put(url, ref)
	}
	return content, rows.Err()
}

func (s *CatalogService) requireSession(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ragscrape.Errorf(ragscrape.ENOTFOUND, "session not found")
	}
	return err
}
