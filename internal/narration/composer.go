// Package narration composes the long-form conversational study explanation
// and normalizes it into display and speech forms.
package narration

import (
	"context"
	"fmt"
	"strings"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/completion"
	"github.com/SpoonyCreature/berea/internal/study"
)

const systemPrompt = "You are a warm, thoughtful Bible teacher speaking to a " +
	"friend. You explain scripture conversationally, drawing out historical " +
	"context and practical application without academic jargon."

// Input carries the material the explanation is built from.
type Input struct {
	Verses         []study.VerseGroup
	OriginalVerses []study.VerseGroup
	Query          string
}

// Result holds the two output forms derived from one model response.
type Result struct {
	Display string
	Speech  string
}

// Composer builds study explanations via the completion service.
type Composer struct {
	svc   completion.Service
	model string
}

// NewComposer creates a Composer using svc with the given model.
func NewComposer(svc completion.Service, model string) *Composer {
	return &Composer{svc: svc, model: model}
}

// Compose invokes the model in free-text mode and post-processes the
// response into display and speech forms.
func (c *Composer) Compose(ctx context.Context, in Input) (*Result, error) {
	messages := []completion.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(in)},
	}

	raw, err := c.svc.Complete(ctx, messages, completion.Options{
		Model:       c.model,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty explanation", apperr.ErrGeneration)
	}

	display := FormatDisplay(raw)
	return &Result{
		Display: display,
		Speech:  FormatSpeech(display),
	}, nil
}

func buildUserPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The listener asked: %q\n\nPassages:\n", in.Query)
	for _, g := range in.Verses {
		fmt.Fprintf(&b, "%s: %s\n", g.Reference, joinVerseTexts(g))
	}
	if len(in.OriginalVerses) > 0 {
		b.WriteString("\nOriginal language:\n")
		for _, g := range in.OriginalVerses {
			fmt.Fprintf(&b, "%s (%s): %s\n", g.Reference, g.Language, joinVerseTexts(g))
		}
	}

	b.WriteString("\nExplain these passages as one flowing talk. " +
		"Keep the tone conversational, use verbal transitions between ideas, " +
		"spell out all numbers, include brief reflective pauses, and close " +
		"with a practical application.")
	return b.String()
}

func joinVerseTexts(g study.VerseGroup) string {
	parts := make([]string, 0, len(g.Verses))
	for _, v := range g.Verses {
		parts = append(parts, v.Text)
	}
	return strings.Join(parts, " ")
}
