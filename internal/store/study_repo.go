package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/study"
)

// InsertStudy stores a new study record.
func (db *DB) InsertStudy(s *study.BibleStudy) error {
	verses, _ := json.Marshal(nonNil(s.Verses))
	crossRefs, _ := json.Marshal(nonNil(s.CrossReferences))
	notes, _ := json.Marshal(nonNil(s.Notes))
	comments, _ := json.Marshal(nonNil(s.Comments))

	_, err := db.conn.Exec(`
		INSERT INTO studies (id, owner, query, translation, explanation, is_public,
			verses, cross_references, notes, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Owner, s.Query, s.Translation, s.Explanation, s.IsPublic,
		string(verses), string(crossRefs), string(notes), string(comments), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert study: %w", err)
	}
	return nil
}

// UpdateStudy rewrites an existing study's mutable fields. ID and owner are
// never changed: the row is addressed by both.
func (db *DB) UpdateStudy(s *study.BibleStudy) error {
	verses, _ := json.Marshal(nonNil(s.Verses))
	crossRefs, _ := json.Marshal(nonNil(s.CrossReferences))
	notes, _ := json.Marshal(nonNil(s.Notes))
	comments, _ := json.Marshal(nonNil(s.Comments))

	res, err := db.conn.Exec(`
		UPDATE studies SET query = ?, translation = ?, explanation = ?, is_public = ?,
			verses = ?, cross_references = ?, notes = ?, comments = ?
		WHERE id = ? AND owner = ?
	`, s.Query, s.Translation, s.Explanation, s.IsPublic,
		string(verses), string(crossRefs), string(notes), string(comments), s.ID, s.Owner)
	if err != nil {
		return fmt.Errorf("store: update study: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetStudy returns the study with the given id.
func (db *DB) GetStudy(id string) (*study.BibleStudy, error) {
	row := db.conn.QueryRow(`
		SELECT id, owner, query, translation, explanation, is_public,
			verses, cross_references, notes, comments, created_at
		FROM studies WHERE id = ?
	`, id)
	return scanStudy(row)
}

// ListStudies returns the owner's studies plus, when includePublic is set,
// other users' public studies, newest first.
func (db *DB) ListStudies(owner string, includePublic bool, limit, offset int) ([]study.BibleStudy, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `
		SELECT id, owner, query, translation, explanation, is_public,
			verses, cross_references, notes, comments, created_at
		FROM studies WHERE owner = ?`
	args := []any{owner}
	if includePublic {
		query += ` OR is_public = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list studies: %w", err)
	}
	defer rows.Close()

	var out []study.BibleStudy
	for rows.Next() {
		s, err := scanStudy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudy(row rowScanner) (*study.BibleStudy, error) {
	var s study.BibleStudy
	var verses, crossRefs, notes, comments string
	var createdAt time.Time
	err := row.Scan(&s.ID, &s.Owner, &s.Query, &s.Translation, &s.Explanation,
		&s.IsPublic, &verses, &crossRefs, &notes, &comments, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan study: %w", err)
	}
	s.CreatedAt = createdAt
	_ = json.Unmarshal([]byte(verses), &s.Verses)
	_ = json.Unmarshal([]byte(crossRefs), &s.CrossReferences)
	_ = json.Unmarshal([]byte(notes), &s.Notes)
	_ = json.Unmarshal([]byte(comments), &s.Comments)
	return &s, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
