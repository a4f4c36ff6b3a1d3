// Package testutil provides shared test helpers for setting up stores and
// audio caches.
package testutil

import (
	"os"
	"testing"

	"github.com/SpoonyCreature/berea/internal/audiostore"
	"github.com/SpoonyCreature/berea/internal/store"
)

// TestDB creates a temporary SQLite document store that is automatically
// cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "berea-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestCache creates a temporary audio cache with a fixed signing secret.
func TestCache(t *testing.T) (*audiostore.FS, *audiostore.Signer) {
	t.Helper()
	signer := audiostore.NewSigner("test-secret")
	cache, err := audiostore.NewFS(t.TempDir(), signer, "/api/audio")
	if err != nil {
		t.Fatal(err)
	}
	return cache, signer
}

// SeedVerse inserts one verse row into the lookup table.
func SeedVerse(t *testing.T, db *store.DB, source, book string, chapter, verse int, text, language string) {
	t.Helper()
	err := db.PutVerse(store.VerseRow{
		Source:   source,
		Book:     book,
		Chapter:  chapter,
		Verse:    verse,
		Text:     text,
		Language: language,
	})
	if err != nil {
		t.Fatal(err)
	}
}
