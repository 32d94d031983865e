// Package sqlite provides the SQLite-backed session catalog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

// migrations are applied in order; PRAGMA user_version records how many
// have already run against a database file.
var migrations = []string{
	`CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		domain TEXT NOT NULL,
		mode TEXT NOT NULL,
		started_at TEXT NOT NULL
	);
	CREATE INDEX idx_sessions_domain ON sessions(domain, started_at);

	CREATE TABLE pages (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		content_size INTEGER NOT NULL DEFAULT 0,
		html_size INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (session_id, position)
	);

	CREATE TABLE contents (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		ref TEXT NOT NULL,
		PRIMARY KEY (session_id, position)
	);`,
}

// DB is the catalog database handle.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path. Pass MemoryPath for a throwaway
// catalog.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database, applies connection pragmas and brings the
// schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := configure(conn, db.path != MemoryPath); err != nil {
		conn.Close()
		return err
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return fmt.Errorf("migrate catalog: %w", err)
	}
	db.db = conn
	return nil
}

func configure(conn *sql.DB, onDisk bool) error {
	if err := conn.Ping(); err != nil {
		return fmt.Errorf("connect catalog: %w", err)
	}
	pragmas := []string{"busy_timeout = 5000", "foreign_keys = ON"}
	if onDisk {
		pragmas = append(pragmas, "journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec("PRAGMA " + p); err != nil {
			return fmt.Errorf("set pragma %s: %w", p, err)
		}
	}
	return nil
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("catalog schema version %d is newer than supported %d", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
