// Package canon holds the canonical book list with chapter counts and the
// closed set of historical-period labels used to tag cross references.
package canon

// Book pairs a canonical book name with its chapter count.
type Book struct {
	Name     string
	Chapters int
}

// Books is the 66-book Protestant canon in traditional order.
var Books = []Book{
	{"Genesis", 50}, {"Exodus", 40}, {"Leviticus", 27}, {"Numbers", 36},
	{"Deuteronomy", 34}, {"Joshua", 24}, {"Judges", 21}, {"Ruth", 4},
	{"1 Samuel", 31}, {"2 Samuel", 24}, {"1 Kings", 22}, {"2 Kings", 25},
	{"1 Chronicles", 29}, {"2 Chronicles", 36}, {"Ezra", 10}, {"Nehemiah", 13},
	{"Esther", 10}, {"Job", 42}, {"Psalms", 150}, {"Proverbs", 31},
	{"Ecclesiastes", 12}, {"Song of Solomon", 8}, {"Isaiah", 66},
	{"Jeremiah", 52}, {"Lamentations", 5}, {"Ezekiel", 48}, {"Daniel", 12},
	{"Hosea", 14}, {"Joel", 3}, {"Amos", 9}, {"Obadiah", 1}, {"Jonah", 4},
	{"Micah", 7}, {"Nahum", 3}, {"Habakkuk", 3}, {"Zephaniah", 3},
	{"Haggai", 2}, {"Zechariah", 14}, {"Malachi", 4},
	{"Matthew", 28}, {"Mark", 16}, {"Luke", 24}, {"John", 21}, {"Acts", 28},
	{"Romans", 16}, {"1 Corinthians", 16}, {"2 Corinthians", 13},
	{"Galatians", 6}, {"Ephesians", 6}, {"Philippians", 4}, {"Colossians", 4},
	{"1 Thessalonians", 5}, {"2 Thessalonians", 3}, {"1 Timothy", 6},
	{"2 Timothy", 4}, {"Titus", 3}, {"Philemon", 1}, {"Hebrews", 13},
	{"James", 5}, {"1 Peter", 5}, {"2 Peter", 3}, {"1 John", 5},
	{"2 John", 1}, {"3 John", 1}, {"Jude", 1}, {"Revelation", 22},
}

// TotalChapters returns the chapter count across the whole canon (1189).
func TotalChapters() int {
	total := 0
	for _, b := range Books {
		total += b.Chapters
	}
	return total
}

// ChapterCount returns the chapter count for a book, or 0 if unknown.
func ChapterCount(name string) int {
	for _, b := range Books {
		if b.Name == name {
			return b.Chapters
		}
	}
	return 0
}

// HistoricalPeriod is a closed label set describing the era a cross
// reference belongs to. Invalid labels are rejected at the validation
// boundary rather than carried downstream.
type HistoricalPeriod string

const (
	PeriodCreation        HistoricalPeriod = "Creation"
	PeriodPatriarchal     HistoricalPeriod = "Patriarchal"
	PeriodEgyptianBondage HistoricalPeriod = "Egyptian Bondage"
	PeriodWilderness      HistoricalPeriod = "Wilderness Wanderings"
	PeriodConquest        HistoricalPeriod = "Conquest of Canaan"
	PeriodJudges          HistoricalPeriod = "Judges"
	PeriodUnitedKingdom   HistoricalPeriod = "United Kingdom"
	PeriodDividedKingdom  HistoricalPeriod = "Divided Kingdom"
	PeriodExile           HistoricalPeriod = "Exile"
	PeriodReturn          HistoricalPeriod = "Return from Exile"
	PeriodIntertestamental HistoricalPeriod = "Intertestamental"
	PeriodLifeOfChrist    HistoricalPeriod = "Life of Christ"
	PeriodEarlyChurch     HistoricalPeriod = "Early Church"
	PeriodApostolic       HistoricalPeriod = "Apostolic"
)

// Periods lists every valid historical period in chronological order.
var Periods = []HistoricalPeriod{
	PeriodCreation, PeriodPatriarchal, PeriodEgyptianBondage,
	PeriodWilderness, PeriodConquest, PeriodJudges, PeriodUnitedKingdom,
	PeriodDividedKingdom, PeriodExile, PeriodReturn, PeriodIntertestamental,
	PeriodLifeOfChrist, PeriodEarlyChurch, PeriodApostolic,
}

// Valid reports whether p is one of the canonical period labels.
func (p HistoricalPeriod) Valid() bool {
	for _, v := range Periods {
		if p == v {
			return true
		}
	}
	return false
}

// PeriodStrings returns the period labels as plain strings, in order.
// Used to build enum constraints for schema-bound completion calls.
func PeriodStrings() []string {
	out := make([]string, len(Periods))
	for i, p := range Periods {
		out[i] = string(p)
	}
	return out
}

// IsOldTestament reports whether name is one of the 39 Old Testament books.
func IsOldTestament(name string) bool {
	for i, b := range Books {
		if b.Name == name {
			return i < 39
		}
	}
	return false
}
