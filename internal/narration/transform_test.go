package narration

import (
	"strings"
	"testing"
)

func TestFormatDisplay_ParagraphBreakAfterSentence(t *testing.T) {
	got := FormatDisplay("Hello.\nWorld")
	if got != "Hello.\n\nWorld" {
		t.Errorf("got %q, want %q", got, "Hello.\n\nWorld")
	}
}

func TestFormatDisplay_CollapsesNewlineRuns(t *testing.T) {
	got := FormatDisplay("One.\n\n\n\nTwo.")
	if got != "One.\n\nTwo." {
		t.Errorf("got %q", got)
	}
}

func TestFormatDisplay_TrimsLines(t *testing.T) {
	got := FormatDisplay("  Hello there.  \n\n  Second paragraph.  ")
	if got != "Hello there.\n\nSecond paragraph." {
		t.Errorf("got %q", got)
	}
}

func TestFormatDisplay_BreakBeforeCapitalAfterSoftWrap(t *testing.T) {
	// A soft-wrapped line ending without punctuation, followed by a
	// capitalised line, becomes a paragraph break.
	got := FormatDisplay("a thought\nAnother thought")
	if got != "a thought\n\nAnother thought" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDisplay_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello.\nWorld",
		"One.\n\n\nTwo.\nThree",
		"  padded  \nNext line. Final.",
	}
	for _, in := range inputs {
		once := FormatDisplay(in)
		twice := FormatDisplay(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestFormatSpeech_StripsMarkdownMarkers(t *testing.T) {
	got := FormatSpeech("This is *emphasised* and `code` and _underlined_.")
	if got != "This is emphasised and code and underlined." {
		t.Errorf("got %q", got)
	}
}

func TestFormatSpeech_CollapsesWhitespace(t *testing.T) {
	got := FormatSpeech("First paragraph.\n\nSecond   paragraph.\tTabbed.")
	if got != "First paragraph. Second paragraph. Tabbed." {
		t.Errorf("got %q", got)
	}
}

func TestFormatSpeech_NoNewlinesRemain(t *testing.T) {
	display := FormatDisplay("Intro.\nBody text continues.\n\n\nClosing thought.")
	speech := FormatSpeech(display)
	if strings.ContainsAny(speech, "\n\t") {
		t.Errorf("speech form contains raw whitespace: %q", speech)
	}
}
