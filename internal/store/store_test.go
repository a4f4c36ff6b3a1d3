package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/canon"
	"github.com/SpoonyCreature/berea/internal/coverage"
	"github.com/SpoonyCreature/berea/internal/study"
	"github.com/SpoonyCreature/berea/internal/testutil"
)

func sampleStudy(id, owner string) *study.BibleStudy {
	return &study.BibleStudy{
		ID:          id,
		Owner:       owner,
		Query:       "creation and Christ",
		Translation: "kjv",
		Explanation: "In the beginning.",
		Verses: []study.VerseGroup{{
			Reference: "Genesis 1:1",
			Verses:    []study.Verse{{Reference: "Genesis 1:1", Text: "In the beginning God created the heaven and the earth."}},
		}},
		CrossReferences: []study.CrossReference{{
			Reference:       "John 1:1",
			Connection:      "The Word in the beginning",
			Period:          canon.PeriodLifeOfChrist,
			SourceReference: "Genesis 1:1",
		}},
		CreatedAt: time.Now(),
	}
}

func TestStudyInsertGetRoundTrip(t *testing.T) {
	db := testutil.TestDB(t)
	want := sampleStudy("s1", "alice")
	if err := db.InsertStudy(want); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetStudy("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Owner != "alice" || got.Query != want.Query || got.Explanation != want.Explanation {
		t.Errorf("got %+v", got)
	}
	if len(got.Verses) != 1 || got.Verses[0].Reference != "Genesis 1:1" {
		t.Errorf("verses = %+v", got.Verses)
	}
	if len(got.CrossReferences) != 1 || got.CrossReferences[0].Period != canon.PeriodLifeOfChrist {
		t.Errorf("cross references = %+v", got.CrossReferences)
	}
	if got.Notes == nil || got.Comments == nil {
		t.Error("empty collections must round-trip as empty, not nil")
	}
}

func TestGetStudyNotFound(t *testing.T) {
	db := testutil.TestDB(t)
	_, err := db.GetStudy("missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStudy(t *testing.T) {
	db := testutil.TestDB(t)
	s := sampleStudy("s1", "alice")
	if err := db.InsertStudy(s); err != nil {
		t.Fatal(err)
	}

	s.Explanation = "Revised explanation."
	s.IsPublic = true
	if err := db.UpdateStudy(s); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetStudy("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Explanation != "Revised explanation." || !got.IsPublic {
		t.Errorf("got %+v", got)
	}
}

func TestUpdateStudyWrongOwner(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.InsertStudy(sampleStudy("s1", "alice")); err != nil {
		t.Fatal(err)
	}

	impostor := sampleStudy("s1", "bob")
	err := db.UpdateStudy(impostor)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListStudies(t *testing.T) {
	db := testutil.TestDB(t)

	a := sampleStudy("s1", "alice")
	a.CreatedAt = time.Now().Add(-2 * time.Hour)
	b := sampleStudy("s2", "alice")
	b.CreatedAt = time.Now().Add(-1 * time.Hour)
	pub := sampleStudy("s3", "bob")
	pub.IsPublic = true
	priv := sampleStudy("s4", "bob")
	for _, s := range []*study.BibleStudy{a, b, pub, priv} {
		if err := db.InsertStudy(s); err != nil {
			t.Fatal(err)
		}
	}

	own, err := db.ListStudies("alice", false, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 2 {
		t.Fatalf("own studies = %d, want 2", len(own))
	}
	if own[0].ID != "s2" || own[1].ID != "s1" {
		t.Errorf("expected newest first, got %s then %s", own[0].ID, own[1].ID)
	}

	withPublic, err := db.ListStudies("alice", true, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(withPublic) != 3 {
		t.Errorf("with public = %d, want 3", len(withPublic))
	}
	for _, s := range withPublic {
		if s.Owner == "bob" && !s.IsPublic {
			t.Error("private study of another user leaked into listing")
		}
	}
}

func TestListStudiesLimit(t *testing.T) {
	db := testutil.TestDB(t)
	for i := 0; i < 5; i++ {
		s := sampleStudy(string(rune('a'+i)), "alice")
		s.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		if err := db.InsertStudy(s); err != nil {
			t.Fatal(err)
		}
	}
	got, err := db.ListStudies("alice", false, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("limit ignored: got %d", len(got))
	}
}

func TestUserContextUpsertAndGet(t *testing.T) {
	db := testutil.TestDB(t)

	_, err := db.GetUserContext("alice")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	uc := &study.UserContext{
		Owner:         "alice",
		Notes:         []study.Note{{ID: "n1", Content: "remember this", CreatedAt: time.Now()}},
		BibleCoverage: coverage.Merge(nil, "Genesis", []int{1, 2}),
		StudyStreak:   3,
		LastStudyDate: time.Now().Add(-24 * time.Hour),
	}
	if err := db.UpsertUserContext(uc); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetUserContext("alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.StudyStreak != 3 {
		t.Errorf("streak = %d", got.StudyStreak)
	}
	if len(got.BibleCoverage) != 1 || len(got.BibleCoverage[0].ChaptersRead) != 2 {
		t.Errorf("coverage = %+v", got.BibleCoverage)
	}
	if got.LastStudyDate.IsZero() {
		t.Error("last study date lost")
	}

	// Second upsert replaces, not duplicates.
	uc.StudyStreak = 4
	if err := db.UpsertUserContext(uc); err != nil {
		t.Fatal(err)
	}
	got, err = db.GetUserContext("alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.StudyStreak != 4 {
		t.Errorf("streak after upsert = %d", got.StudyStreak)
	}
}

func TestUserContextNullLastStudyDate(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertUserContext(&study.UserContext{Owner: "bob"}); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetUserContext("bob")
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastStudyDate.IsZero() {
		t.Errorf("last study date = %v, want zero", got.LastStudyDate)
	}
}

func TestVerseLookupOrdering(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 3, "verse three", "")
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 1, "verse one", "")

	rows, err := db.GetVerses("kjv", "Genesis", 1, []int{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Verse != 1 || rows[1].Verse != 3 {
		t.Errorf("rows = %+v, want verse order", rows)
	}
}
