package verses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/testutil"
	"github.com/SpoonyCreature/berea/internal/verses"
)

func TestResolve(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 1, "In the beginning God created the heaven and the earth.", "")
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 2, "And the earth was without form, and void.", "")
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 3, "And God said, Let there be light.", "")
	r := verses.NewSQLResolver(db)

	got, err := r.Resolve(context.Background(), "Genesis 1:1-2", "kjv")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d verses", len(got))
	}
	if got[0].Reference != "Genesis 1:1" {
		t.Errorf("reference = %q", got[0].Reference)
	}
	if got[1].Text != "And the earth was without form, and void." {
		t.Errorf("text = %q", got[1].Text)
	}
}

func TestResolveOmitsMissingVerses(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.SeedVerse(t, db, "kjv", "Genesis", 1, 1, "In the beginning.", "")
	r := verses.NewSQLResolver(db)

	got, err := r.Resolve(context.Background(), "Genesis 1:1,3", "kjv")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d verses, want only the stored one", len(got))
	}
}

func TestResolveNotFound(t *testing.T) {
	db := testutil.TestDB(t)
	r := verses.NewSQLResolver(db)

	_, err := r.Resolve(context.Background(), "Genesis 1:1", "kjv")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveBadReference(t *testing.T) {
	db := testutil.TestDB(t)
	r := verses.NewSQLResolver(db)

	_, err := r.Resolve(context.Background(), "nonsense", "kjv")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestResolveGroupCarriesLanguage(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.SeedVerse(t, db, "hebrew", "Genesis", 1, 1, "בראשית ברא אלהים", "hebrew")
	r := verses.NewSQLResolver(db)

	group, err := r.ResolveGroup(context.Background(), "Genesis 1:1", "hebrew")
	if err != nil {
		t.Fatal(err)
	}
	if group.Reference != "Genesis 1:1" {
		t.Errorf("group reference = %q", group.Reference)
	}
	if group.Language != "hebrew" {
		t.Errorf("language = %q", group.Language)
	}
	if len(group.Verses) != 1 || group.Verses[0].Text != "בראשית ברא אלהים" {
		t.Errorf("verses = %+v", group.Verses)
	}
}
