// Package studyservice orchestrates the study generation and narration
// pipelines over the resolver, generator, composer, audio, and store layers.
package studyservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/audio"
	"github.com/SpoonyCreature/berea/internal/canon"
	"github.com/SpoonyCreature/berea/internal/coverage"
	"github.com/SpoonyCreature/berea/internal/crossref"
	"github.com/SpoonyCreature/berea/internal/narration"
	"github.com/SpoonyCreature/berea/internal/store"
	"github.com/SpoonyCreature/berea/internal/study"
	"github.com/SpoonyCreature/berea/internal/verses"
)

// EventCallback is invoked after pipeline milestones, e.g. "study.created".
type EventCallback func(kind, id string)

// Service sequences the study pipeline.
type Service struct {
	db       *store.DB
	resolver verses.Resolver
	crossref *crossref.Generator
	composer *narration.Composer
	audio    *audio.Service
	logger   *slog.Logger
	onEvent  EventCallback
}

// NewService creates the orchestrator. cb may be nil.
func NewService(db *store.DB, resolver verses.Resolver, gen *crossref.Generator,
	composer *narration.Composer, audioSvc *audio.Service, logger *slog.Logger, cb EventCallback) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:       db,
		resolver: resolver,
		crossref: gen,
		composer: composer,
		audio:    audioSvc,
		logger:   logger,
		onEvent:  cb,
	}
}

// CreateInput describes one study generation request.
type CreateInput struct {
	Owner           string
	Query           string
	References      []string
	Translation     string
	IncludeOriginal bool
	IsPublic        bool
}

// CreateStudy runs the generation pipeline: resolve verses, generate cross
// references, compose the explanation, persist the study, then fold the
// studied chapters into the user's coverage ledger. The coverage and streak
// update is best-effort: its failure is logged and does not fail creation.
func (s *Service) CreateStudy(ctx context.Context, in CreateInput) (*study.BibleStudy, error) {
	if in.Owner == "" || strings.TrimSpace(in.Query) == "" || len(in.References) == 0 {
		return nil, fmt.Errorf("%w: owner, query, and references are required", apperr.ErrValidation)
	}
	translation := in.Translation
	if translation == "" {
		translation = "kjv"
	}

	var groups []study.VerseGroup
	var originals []study.VerseGroup
	for _, ref := range in.References {
		group, err := s.resolver.ResolveGroup(ctx, ref, translation)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)

		if in.IncludeOriginal {
			parsed, err := verses.Parse(ref)
			if err != nil {
				return nil, err
			}
			source := "greek"
			if canon.IsOldTestament(parsed.Book) {
				source = "hebrew"
			}
			og, err := s.resolver.ResolveGroup(ctx, ref, source)
			if err != nil {
				// Original-language text is an enrichment, not a requirement.
				s.logger.Warn("original language lookup failed",
					slog.String("reference", ref), slog.String("error", err.Error()))
				continue
			}
			originals = append(originals, *og)
		}
	}

	first, err := verses.Parse(in.References[0])
	if err != nil {
		return nil, err
	}
	crossRefs, err := s.crossref.Generate(ctx, crossref.Input{
		BookName:    first.Book,
		Chapter:     first.Chapter,
		Verse:       verseSpec(first.Verses),
		Text:        groupText(groups[0]),
		Translation: in.Translation,
	})
	if err != nil {
		return nil, err
	}

	composed, err := s.composer.Compose(ctx, narration.Input{
		Verses:         groups,
		OriginalVerses: originals,
		Query:          in.Query,
	})
	if err != nil {
		return nil, err
	}

	st := &study.BibleStudy{
		ID:              uuid.NewString(),
		Query:           in.Query,
		Translation:     translation,
		Verses:          groups,
		CrossReferences: crossRefs,
		Explanation:     composed.Display,
		Owner:           in.Owner,
		CreatedAt:       time.Now(),
		IsPublic:        in.IsPublic,
	}
	if err := s.db.InsertStudy(st); err != nil {
		return nil, err
	}

	if err := s.recordStudyActivity(in.Owner, in.References); err != nil {
		s.logger.Warn("coverage update failed",
			slog.String("owner", in.Owner), slog.String("error", err.Error()))
	}

	if s.onEvent != nil {
		s.onEvent("study.created", st.ID)
	}
	return st, nil
}

// NarrateStudy returns a signed audio reference for a study, synthesizing
// the narration on first request. checkOnly probes the cache only.
func (s *Service) NarrateStudy(ctx context.Context, owner, studyID string, checkOnly bool) (*audio.Result, error) {
	st, err := s.GetStudy(ctx, owner, studyID)
	if err != nil {
		return nil, err
	}
	// The cache watcher announces audio.ready once the artifact lands.
	return s.audio.Narrate(ctx, audio.Request{
		StudyID:   st.ID,
		Text:      narration.FormatSpeech(st.Explanation),
		CheckOnly: checkOnly,
	})
}

// GetStudy returns a study visible to owner: their own or a public one.
func (s *Service) GetStudy(_ context.Context, owner, id string) (*study.BibleStudy, error) {
	st, err := s.db.GetStudy(id)
	if err != nil {
		return nil, err
	}
	if st.Owner != owner && !st.IsPublic {
		return nil, apperr.ErrForbidden
	}
	return st, nil
}

// ListStudies returns the owner's studies plus public ones, newest first.
func (s *Service) ListStudies(_ context.Context, owner string, limit, offset int) ([]study.BibleStudy, error) {
	return s.db.ListStudies(owner, true, limit, offset)
}

// UpdatePatch carries the owner-mutable study fields.
type UpdatePatch struct {
	IsPublic    *bool
	Explanation *string
}

// UpdateStudy applies a patch to an owned study. Identity is preserved:
// id and owner never change.
func (s *Service) UpdateStudy(_ context.Context, owner, id string, patch UpdatePatch) (*study.BibleStudy, error) {
	st, err := s.db.GetStudy(id)
	if err != nil {
		return nil, err
	}
	if st.Owner != owner {
		return nil, apperr.ErrForbidden
	}
	if patch.IsPublic != nil {
		st.IsPublic = *patch.IsPublic
	}
	if patch.Explanation != nil {
		st.Explanation = narration.FormatDisplay(*patch.Explanation)
	}
	if err := s.db.UpdateStudy(st); err != nil {
		return nil, err
	}
	return st, nil
}

// AddStudyNote appends a note to an owned study.
func (s *Service) AddStudyNote(_ context.Context, owner, id, content string) (*study.BibleStudy, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}
	st, err := s.db.GetStudy(id)
	if err != nil {
		return nil, err
	}
	if st.Owner != owner {
		return nil, apperr.ErrForbidden
	}
	st.Notes = append(st.Notes, study.Note{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err := s.db.UpdateStudy(st); err != nil {
		return nil, err
	}
	return st, nil
}

// AddNote appends a free-form note to the user's context.
func (s *Service) AddNote(_ context.Context, owner, reference, content string) (*study.UserContext, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}
	uc, err := s.userContext(owner)
	if err != nil {
		return nil, err
	}
	uc.Notes = append(uc.Notes, study.Note{
		ID:        uuid.NewString(),
		Reference: reference,
		Content:   content,
		CreatedAt: time.Now(),
	})
	uc.LastActivity = time.Now()
	if err := s.db.UpsertUserContext(uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// CoverageReport pairs the ledger with the recomputed overall percentage.
type CoverageReport struct {
	Books   []coverage.BookCoverage `json:"books"`
	Percent float64                 `json:"percent"`
}

// Coverage returns the user's ledger and overall percentage. The percentage
// is recomputed from the full ledger on every call.
func (s *Service) Coverage(_ context.Context, owner string) (*CoverageReport, error) {
	uc, err := s.userContext(owner)
	if err != nil {
		return nil, err
	}
	return &CoverageReport{
		Books:   uc.BibleCoverage,
		Percent: coverage.Percent(uc.BibleCoverage),
	}, nil
}

// RecordCoverage folds a read-chapters delta for one book into the ledger.
func (s *Service) RecordCoverage(_ context.Context, owner, book string, chapters []int) (*CoverageReport, error) {
	if book == "" || len(chapters) == 0 {
		return nil, fmt.Errorf("%w: book and chapters are required", apperr.ErrValidation)
	}
	uc, err := s.userContext(owner)
	if err != nil {
		return nil, err
	}
	uc.BibleCoverage = coverage.Merge(uc.BibleCoverage, book, chapters)
	uc.LastActivity = time.Now()
	if err := s.db.UpsertUserContext(uc); err != nil {
		return nil, err
	}
	return &CoverageReport{
		Books:   uc.BibleCoverage,
		Percent: coverage.Percent(uc.BibleCoverage),
	}, nil
}

// userContext loads the owner's context, creating it lazily on first access.
func (s *Service) userContext(owner string) (*study.UserContext, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", apperr.ErrValidation)
	}
	uc, err := s.db.GetUserContext(owner)
	if err == nil {
		return uc, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	uc = &study.UserContext{Owner: owner, LastActivity: time.Now()}
	if err := s.db.UpsertUserContext(uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// recordStudyActivity merges the studied chapters into the coverage ledger
// and advances the study streak.
func (s *Service) recordStudyActivity(owner string, references []string) error {
	uc, err := s.userContext(owner)
	if err != nil {
		return err
	}
	for _, ref := range references {
		parsed, err := verses.Parse(ref)
		if err != nil {
			continue
		}
		uc.BibleCoverage = coverage.Merge(uc.BibleCoverage, parsed.Book, []int{parsed.Chapter})
	}

	now := time.Now()
	switch {
	case uc.LastStudyDate.IsZero():
		uc.StudyStreak = 1
	case sameDay(uc.LastStudyDate, now):
		// Streak unchanged for repeat studies on the same day.
	case sameDay(uc.LastStudyDate.AddDate(0, 0, 1), now):
		uc.StudyStreak++
	default:
		uc.StudyStreak = 1
	}
	uc.LastStudyDate = now
	uc.LastActivity = now

	return s.db.UpsertUserContext(uc)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// verseSpec renders an expanded verse list back into compact reference
// syntax ("16-19", "1,3", "16").
func verseSpec(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	contiguous := true
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[i-1]+1 {
			contiguous = false
			break
		}
	}
	if contiguous && len(nums) > 1 {
		return fmt.Sprintf("%d-%d", nums[0], nums[len(nums)-1])
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ",")
}

func groupText(g study.VerseGroup) string {
	parts := make([]string, 0, len(g.Verses))
	for _, v := range g.Verses {
		parts = append(parts, v.Text)
	}
	return strings.Join(parts, " ")
}
