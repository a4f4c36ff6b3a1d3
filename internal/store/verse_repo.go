package store

import (
	"fmt"
	"strings"
)

// VerseRow is one row of the verse lookup table.
type VerseRow struct {
	Source   string
	Book     string
	Chapter  int
	Verse    int
	Text     string
	Language string
}

// GetVerses returns the requested verses of a chapter from a source, in
// verse-number order. Verses absent from the source are simply omitted.
func (db *DB) GetVerses(source, book string, chapter int, verses []int) ([]VerseRow, error) {
	if len(verses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(verses)), ",")
	args := []any{source, book, chapter}
	for _, v := range verses {
		args = append(args, v)
	}

	rows, err := db.conn.Query(`
		SELECT source, book, chapter, verse, text, language
		FROM verses
		WHERE source = ? AND book = ? AND chapter = ? AND verse IN (`+placeholders+`)
		ORDER BY verse
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: get verses: %w", err)
	}
	defer rows.Close()

	var out []VerseRow
	for rows.Next() {
		var r VerseRow
		if err := rows.Scan(&r.Source, &r.Book, &r.Chapter, &r.Verse, &r.Text, &r.Language); err != nil {
			return nil, fmt.Errorf("store: scan verse: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PutVerse inserts or replaces one verse row. Used by data loaders and
// tests to seed the lookup table.
func (db *DB) PutVerse(r VerseRow) error {
	_, err := db.conn.Exec(`
		INSERT INTO verses (source, book, chapter, verse, text, language)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, book, chapter, verse) DO UPDATE SET
			text = excluded.text, language = excluded.language
	`, r.Source, r.Book, r.Chapter, r.Verse, r.Text, r.Language)
	if err != nil {
		return fmt.Errorf("store: put verse: %w", err)
	}
	return nil
}
