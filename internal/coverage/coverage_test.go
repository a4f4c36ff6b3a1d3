package coverage

import (
	"math"
	"testing"
	"time"
)

func TestMerge_AppendsNewBook(t *testing.T) {
	ledger := Merge(nil, "Genesis", []int{3, 1, 3})
	if len(ledger) != 1 {
		t.Fatalf("ledger length = %d", len(ledger))
	}
	got := ledger[0]
	if got.Book != "Genesis" {
		t.Errorf("book = %q", got.Book)
	}
	if len(got.ChaptersRead) != 2 || got.ChaptersRead[0] != 1 || got.ChaptersRead[1] != 3 {
		t.Errorf("chapters = %v, want [1 3]", got.ChaptersRead)
	}
	if got.LastStudied.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestMerge_UnionsExistingBook(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	ledger := []BookCoverage{{Book: "John", ChaptersRead: []int{1, 2}, LastStudied: old}}

	ledger = Merge(ledger, "John", []int{2, 3})
	if len(ledger) != 1 {
		t.Fatalf("ledger length = %d", len(ledger))
	}
	got := ledger[0].ChaptersRead
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("chapters = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chapters = %v, want %v", got, want)
		}
	}
	if !ledger[0].LastStudied.After(old) {
		t.Error("timestamp was not refreshed")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	once := Merge(nil, "Psalms", []int{23, 1})
	twice := Merge(once, "Psalms", []int{23, 1})
	if len(twice) != 1 || len(twice[0].ChaptersRead) != 2 {
		t.Errorf("repeated merge changed the set: %v", twice)
	}
}

func TestMerge_LeavesOtherBooksAlone(t *testing.T) {
	ledger := Merge(nil, "Genesis", []int{1})
	ledger = Merge(ledger, "Exodus", []int{1, 2})
	if len(ledger) != 2 {
		t.Fatalf("ledger length = %d", len(ledger))
	}
	if len(ledger[0].ChaptersRead) != 1 {
		t.Errorf("genesis chapters = %v", ledger[0].ChaptersRead)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(nil); got != 0 {
		t.Errorf("empty ledger percent = %v", got)
	}

	// 1189 chapters in the canon; reading all of Genesis (50) plus
	// Philemon (1) covers 51 of them.
	chapters := make([]int, 50)
	for i := range chapters {
		chapters[i] = i + 1
	}
	ledger := Merge(nil, "Genesis", chapters)
	ledger = Merge(ledger, "Philemon", []int{1})

	want := float64(51) / 1189 * 100
	if got := Percent(ledger); math.Abs(got-want) > 1e-9 {
		t.Errorf("percent = %v, want %v", got, want)
	}
}
