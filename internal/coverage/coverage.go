// Package coverage tracks how much of the canon a user has read.
package coverage

import (
	"sort"
	"time"

	"github.com/SpoonyCreature/berea/internal/canon"
)

// BookCoverage records the chapters a user has read in one book.
// ChaptersRead is a deduplicated set.
type BookCoverage struct {
	Book         string    `json:"book"`
	ChaptersRead []int     `json:"chaptersRead"`
	LastStudied  time.Time `json:"lastStudied"`
}

// Merge folds newly read chapters for a book into the ledger and returns
// the updated ledger. An existing entry is replaced by the set union of its
// chapters and the delta; a missing entry is appended. The matched entry's
// timestamp is refreshed. Merging is idempotent: submitting the same delta
// twice yields the same ledger as once.
func Merge(ledger []BookCoverage, book string, chapters []int) []BookCoverage {
	now := time.Now()
	for i := range ledger {
		if ledger[i].Book == book {
			ledger[i].ChaptersRead = union(ledger[i].ChaptersRead, chapters)
			ledger[i].LastStudied = now
			return ledger
		}
	}
	return append(ledger, BookCoverage{
		Book:         book,
		ChaptersRead: union(nil, chapters),
		LastStudied:  now,
	})
}

// Percent recomputes overall coverage from the full ledger against the
// canonical chapter totals. It is never cached.
func Percent(ledger []BookCoverage) float64 {
	total := canon.TotalChapters()
	if total == 0 {
		return 0
	}
	read := 0
	for _, bc := range ledger {
		read += len(bc.ChaptersRead)
	}
	return float64(read) / float64(total) * 100
}

// union returns the sorted deduplicated union of a and b.
func union(a, b []int) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for _, c := range a {
		seen[c] = struct{}{}
	}
	for _, c := range b {
		seen[c] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}
