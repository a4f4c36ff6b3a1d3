// Package crossref generates schema-validated cross references for a verse
// using the completion service.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/canon"
	"github.com/SpoonyCreature/berea/internal/completion"
	"github.com/SpoonyCreature/berea/internal/study"
)

// Input describes the verse to generate cross references for.
// Translation is optional; every other field is required.
type Input struct {
	BookName    string `json:"bookName"`
	Chapter     int    `json:"chapter"`
	Verse       string `json:"verse"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

// Validate checks required fields.
func (in *Input) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.BookName, validation.Required),
		validation.Field(&in.Chapter, validation.Required, validation.Min(1)),
		validation.Field(&in.Verse, validation.Required),
		validation.Field(&in.Text, validation.Required),
	)
}

// Generator builds cross-reference prompts and validates model output.
type Generator struct {
	svc    completion.Service
	model  string
	logger *slog.Logger
}

// NewGenerator creates a Generator using svc with the given model.
func NewGenerator(svc completion.Service, model string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{svc: svc, model: model, logger: logger}
}

// responseSchema is the strict shape the completion must return: an object
// with a cross_references array whose items carry exactly reference,
// connection, and period, with period constrained to the canonical enum.
func responseSchema() *completion.Schema {
	return &completion.Schema{
		Name: "cross_references",
		Properties: map[string]*completion.Property{
			"cross_references": {
				Type: "array",
				Items: completion.Object(map[string]*completion.Property{
					"reference": {
						Type:        "string",
						Description: "Bible reference, may be a range or comma-joined verse list",
					},
					"connection": {
						Type:        "string",
						Description: "Short description of how this passage connects to the source verse",
					},
					"period": {
						Type: "string",
						Enum: canon.PeriodStrings(),
					},
				}),
			},
		},
		Required:             []string{"cross_references"},
		AdditionalProperties: false,
	}
}

type rawItem struct {
	Reference  string `json:"reference"`
	Connection string `json:"connection"`
	Period     string `json:"period"`
}

type rawResponse struct {
	CrossReferences *[]rawItem `json:"cross_references"`
}

// Generate asks the model for up to 8 cross references for the input verse
// and maps the validated response into domain records. Text is left empty
// for lazy resolution; SourceReference is the constructed reference string.
func (g *Generator) Generate(ctx context.Context, in Input) ([]study.CrossReference, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	source := fmt.Sprintf("%s %d:%s", in.BookName, in.Chapter, in.Verse)

	messages := []completion.Message{
		{Role: "system", Content: "You are a Bible scholar with deep knowledge of scripture's historical context and internal connections."},
		{Role: "user", Content: buildPrompt(source, in.Text, in.Translation)},
	}

	raw, err := g.svc.Complete(ctx, messages, completion.Options{
		Model:       g.model,
		Temperature: 0.7,
		Schema:      responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	g.logger.Info("cross references generated",
		slog.String("source", source),
		slog.String("response", raw))

	var parsed rawResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", apperr.ErrUpstreamFormat, err)
	}
	if parsed.CrossReferences == nil {
		return nil, fmt.Errorf("%w: missing cross_references array", apperr.ErrUpstreamFormat)
	}

	refs := make([]study.CrossReference, 0, len(*parsed.CrossReferences))
	for _, item := range *parsed.CrossReferences {
		period := canon.HistoricalPeriod(item.Period)
		if !period.Valid() {
			return nil, fmt.Errorf("%w: invalid period %q", apperr.ErrUpstreamFormat, item.Period)
		}
		refs = append(refs, study.CrossReference{
			Reference:       item.Reference,
			Connection:      item.Connection,
			Period:          period,
			SourceReference: source,
		})
	}
	return refs, nil
}

func buildPrompt(source, text, translation string) string {
	p := fmt.Sprintf(
		"Find up to 8 cross references for %s: %q.\n"+
			"For each, give the reference (a single verse, a range like "+
			"\"Colossians 1:16-19\", or a comma-joined list like \"Genesis 1:1,3\"), "+
			"a one-sentence description of the connection, and the historical "+
			"period the referenced passage belongs to.",
		source, text)
	if translation != "" {
		p += fmt.Sprintf(" Use the %s translation for reference wording.", translation)
	}
	return p
}
