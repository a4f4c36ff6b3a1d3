package narration

import (
	"regexp"
	"strings"
)

var (
	tripleNewlineRe = regexp.MustCompile(`\n{3,}`)
	// Single newline before a capital where the previous character is not a
	// period or newline: promote to a paragraph break.
	capitalAfterSoftBreakRe = regexp.MustCompile(`([^.\n])\n([A-Z])`)
	// Single newline after sentence-ending punctuation: promote to a
	// paragraph break.
	sentenceEndSoftBreakRe = regexp.MustCompile(`([.!?])\n([^\n])`)

	markdownMarkerRe = regexp.MustCompile("[*_`]+")
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
)

// FormatDisplay normalizes raw model output into paragraph-aware display
// text. The transform is idempotent.
func FormatDisplay(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.Join(lines, "\n")

	out = tripleNewlineRe.ReplaceAllString(out, "\n\n")
	out = capitalAfterSoftBreakRe.ReplaceAllString(out, "$1\n\n$2")
	out = sentenceEndSoftBreakRe.ReplaceAllString(out, "$1\n\n$2")
	return strings.TrimSpace(out)
}

// FormatSpeech derives speech-ready prose from the display form: markdown
// emphasis and code markers stripped, paragraph breaks softened, and all
// whitespace runs collapsed to single spaces.
func FormatSpeech(display string) string {
	out := markdownMarkerRe.ReplaceAllString(display, "")
	out = strings.ReplaceAll(out, "\n\n", " \n")
	out = whitespaceRunRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
