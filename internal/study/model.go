// Package study defines the domain model for generated Bible studies and
// per-user study context.
package study

import (
	"time"

	"github.com/SpoonyCreature/berea/internal/canon"
	"github.com/SpoonyCreature/berea/internal/coverage"
)

// VerseRef is a resolved verse reference. The Reference string may denote a
// verse range ("Colossians 1:16-19") or a comma-joined list ("Genesis 1:1,3").
// Immutable once produced by resolution.
type VerseRef struct {
	BookName  string `json:"bookName"`
	Chapter   int    `json:"chapter"`
	Verse     string `json:"verse"`
	Reference string `json:"reference,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Verse is a single resolved verse within a group.
type Verse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// VerseGroup gathers the verses resolved for one reference expression.
// Language is set for original-language groups ("hebrew" or "greek").
type VerseGroup struct {
	Reference string  `json:"reference"`
	Language  string  `json:"language,omitempty"`
	Verses    []Verse `json:"verses"`
}

// CrossReference links a study verse to a related passage. Text is filled
// lazily on demand; it is empty at generation time.
type CrossReference struct {
	Reference       string                 `json:"reference"`
	Connection      string                 `json:"connection"`
	Period          canon.HistoricalPeriod `json:"period"`
	Text            string                 `json:"text"`
	SourceReference string                 `json:"sourceReference"`
}

// Comment is a reader comment on a public study.
type Comment struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BibleStudy is the persisted result of one generation request. ID and
// Owner never change after creation; only the owner may update the rest.
type BibleStudy struct {
	ID              string           `json:"id"`
	Query           string           `json:"query"`
	Translation     string           `json:"translation"`
	Verses          []VerseGroup     `json:"verses"`
	CrossReferences []CrossReference `json:"crossReferences"`
	Explanation     string           `json:"explanation"`
	Owner           string           `json:"owner"`
	CreatedAt       time.Time        `json:"createdAt"`
	IsPublic        bool             `json:"isPublic"`
	Notes           []Note           `json:"notes"`
	Comments        []Comment        `json:"comments"`
}

// Note is a free-form study note. Notes are append-only.
type Note struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserContext is the per-user ledger of notes, coverage, and streak state.
// Created lazily on first access.
type UserContext struct {
	Owner          string                  `json:"owner"`
	Notes          []Note                  `json:"notes"`
	BibleCoverage  []coverage.BookCoverage `json:"bibleCoverage"`
	LastActivity   time.Time               `json:"lastActivity"`
	StudyStreak    int                     `json:"studyStreak"`
	LastStudyDate  time.Time               `json:"lastStudyDate"`
	FavoriteTopics []string                `json:"favoriteTopics"`
}
