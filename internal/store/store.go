// Package store provides the SQLite-backed document store for studies,
// user contexts, and the verse lookup table.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS studies (
	id               TEXT PRIMARY KEY,
	owner            TEXT NOT NULL,
	query            TEXT NOT NULL DEFAULT '',
	translation      TEXT NOT NULL DEFAULT '',
	explanation      TEXT NOT NULL DEFAULT '',
	is_public        INTEGER NOT NULL DEFAULT 0,
	verses           TEXT NOT NULL DEFAULT '[]',
	cross_references TEXT NOT NULL DEFAULT '[]',
	notes            TEXT NOT NULL DEFAULT '[]',
	comments         TEXT NOT NULL DEFAULT '[]',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_studies_owner ON studies(owner);
CREATE INDEX IF NOT EXISTS idx_studies_public ON studies(is_public);

CREATE TABLE IF NOT EXISTS user_contexts (
	owner           TEXT PRIMARY KEY,
	notes           TEXT NOT NULL DEFAULT '[]',
	bible_coverage  TEXT NOT NULL DEFAULT '[]',
	favorite_topics TEXT NOT NULL DEFAULT '[]',
	last_activity   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	study_streak    INTEGER NOT NULL DEFAULT 0,
	last_study_date DATETIME
);

CREATE TABLE IF NOT EXISTS verses (
	source   TEXT NOT NULL,
	book     TEXT NOT NULL,
	chapter  INTEGER NOT NULL,
	verse    INTEGER NOT NULL,
	text     TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (source, book, chapter, verse)
);
`

// DB wraps a sql.DB with document-store operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
