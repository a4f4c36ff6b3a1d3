package verses

import (
	"context"
	"fmt"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/store"
	"github.com/SpoonyCreature/berea/internal/study"
)

// Resolver maps a reference expression to verse text in a given source.
// Sources include translations ("kjv") and original-language texts
// ("hebrew", "greek").
type Resolver interface {
	Resolve(ctx context.Context, reference, sourceID string) ([]study.Verse, error)
	ResolveGroup(ctx context.Context, reference, sourceID string) (*study.VerseGroup, error)
}

// SQLResolver implements Resolver over the verses lookup table.
type SQLResolver struct {
	db *store.DB
}

var _ Resolver = (*SQLResolver)(nil)

// NewSQLResolver creates a resolver backed by db.
func NewSQLResolver(db *store.DB) *SQLResolver {
	return &SQLResolver{db: db}
}

// Resolve expands the reference and returns one study.Verse per verse
// found in the source.
func (r *SQLResolver) Resolve(_ context.Context, reference, sourceID string) ([]study.Verse, error) {
	ref, err := Parse(reference)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.GetVerses(sourceID, ref.Book, ref.Chapter, ref.Verses)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s in source %s", apperr.ErrNotFound, reference, sourceID)
	}
	out := make([]study.Verse, len(rows))
	for i, row := range rows {
		out[i] = study.Verse{
			Reference: fmt.Sprintf("%s %d:%d", row.Book, row.Chapter, row.Verse),
			Text:      row.Text,
		}
	}
	return out, nil
}

// ResolveGroup resolves a reference into a verse group tagged with the
// source language (empty for translations).
func (r *SQLResolver) ResolveGroup(ctx context.Context, reference, sourceID string) (*study.VerseGroup, error) {
	ref, err := Parse(reference)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.GetVerses(sourceID, ref.Book, ref.Chapter, ref.Verses)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s in source %s", apperr.ErrNotFound, reference, sourceID)
	}
	group := &study.VerseGroup{
		Reference: reference,
		Language:  rows[0].Language,
	}
	for _, row := range rows {
		group.Verses = append(group.Verses, study.Verse{
			Reference: fmt.Sprintf("%s %d:%d", row.Book, row.Chapter, row.Verse),
			Text:      row.Text,
		})
	}
	return group, nil
}
