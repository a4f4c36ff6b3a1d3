// Package verses resolves scripture reference strings to verse text.
package verses

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SpoonyCreature/berea/internal/apperr"
)

// Ref is a parsed reference expression: one book, one chapter, and the
// expanded list of verse numbers it denotes.
type Ref struct {
	Book    string
	Chapter int
	Verses  []int
}

// Parse parses a reference expression. Ranges ("Colossians 1:16-19") and
// comma-joined lists ("Genesis 1:1,3") are valid syntax. Book names may
// carry a leading ordinal ("1 John 2:5").
func Parse(reference string) (*Ref, error) {
	ref := strings.TrimSpace(reference)
	idx := strings.LastIndex(ref, " ")
	if idx <= 0 {
		return nil, fmt.Errorf("%w: malformed reference %q", apperr.ErrValidation, reference)
	}
	book := strings.TrimSpace(ref[:idx])
	locator := ref[idx+1:]

	chapterStr, verseStr, ok := strings.Cut(locator, ":")
	if !ok {
		return nil, fmt.Errorf("%w: missing chapter:verse in %q", apperr.ErrValidation, reference)
	}
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil || chapter < 1 {
		return nil, fmt.Errorf("%w: bad chapter in %q", apperr.ErrValidation, reference)
	}

	var nums []int
	for _, part := range strings.Split(verseStr, ",") {
		part = strings.TrimSpace(part)
		if from, to, isRange := strings.Cut(part, "-"); isRange {
			lo, err1 := strconv.Atoi(from)
			hi, err2 := strconv.Atoi(to)
			if err1 != nil || err2 != nil || lo < 1 || hi < lo {
				return nil, fmt.Errorf("%w: bad verse range %q in %q", apperr.ErrValidation, part, reference)
			}
			for v := lo; v <= hi; v++ {
				nums = append(nums, v)
			}
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("%w: bad verse %q in %q", apperr.ErrValidation, part, reference)
		}
		nums = append(nums, v)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("%w: no verses in %q", apperr.ErrValidation, reference)
	}

	return &Ref{Book: book, Chapter: chapter, Verses: nums}, nil
}
