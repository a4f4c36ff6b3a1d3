// Package chunk splits long narration text into bounded segments for
// sequential speech synthesis, preferring section and sentence boundaries
// over raw character slicing.
package chunk

import "strings"

// DefaultLimit is the per-chunk character ceiling, kept under the speech
// service's hard input limit with a safety margin.
const DefaultLimit = 4000

// Split breaks text into ordered chunks of at most limit characters.
// Sections (numbered-list items, blank-line separated blocks) are split
// first, then sentences within each section are accumulated greedily.
// Content is never reordered and no chunk is empty.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var chunks []string
	current := ""

	flush := func() {
		trimmed := strings.TrimSpace(current)
		if trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = ""
	}

	for _, section := range sections(text) {
		for _, sentence := range sentences(section) {
			if sentence == "" {
				continue
			}
			// Oversized lone sentence: hard-split rather than exceed limit.
			for len(sentence) > limit {
				flush()
				chunks = append(chunks, strings.TrimSpace(sentence[:limit]))
				sentence = strings.TrimSpace(sentence[limit:])
			}
			if sentence == "" {
				continue
			}
			if current != "" && len(current)+1+len(sentence) > limit {
				flush()
			}
			if current == "" {
				current = sentence
			} else {
				current += " " + sentence
			}
		}
	}
	flush()
	return chunks
}

// sections splits text ahead of numbered-list markers ("1. ") and on runs
// of two or more newlines. The delimiter stays with the following section.
func sections(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		// Run of 2+ newlines ends the current section.
		if text[i] == '\n' {
			j := i
			for j < len(text) && (text[j] == '\n' || text[j] == '\r') {
				j++
			}
			if strings.Count(text[i:j], "\n") >= 2 {
				if i > start {
					out = append(out, text[start:i])
				}
				start = i
				i = j
				continue
			}
			i = j
			continue
		}
		// Numbered-list marker starts a new section.
		if i > start && isDigit(text[i]) && !isDigit(text[i-1]) {
			j := i
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			if j+1 < len(text) && text[j] == '.' && text[j+1] == ' ' {
				out = append(out, text[start:i])
				start = i
				i = j
				continue
			}
			i = j
			continue
		}
		i++
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// sentences splits a section on whitespace that follows sentence-ending
// punctuation, keeping the punctuation with the preceding sentence.
func sentences(section string) []string {
	var out []string
	start := 0
	for i := 0; i < len(section); i++ {
		c := section[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(section) && isSpace(section[i+1]) {
			out = append(out, strings.TrimSpace(section[start:i+1]))
			j := i + 1
			for j < len(section) && isSpace(section[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(section) {
		out = append(out, strings.TrimSpace(section[start:]))
	}
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
