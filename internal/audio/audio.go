// Package audio turns narration text into a cached, chunked, concatenated
// audio artifact and hands out signed read references.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/audiostore"
	"github.com/SpoonyCreature/berea/internal/chunk"
	"github.com/SpoonyCreature/berea/internal/speech"
)

const contentType = "audio/mpeg"

// Request asks for the narration audio of one study.
type Request struct {
	StudyID string
	Text    string
	// CheckOnly probes the cache without triggering synthesis.
	CheckOnly bool
}

// Result carries the signed read reference for a cached artifact.
// A nil Result from Narrate means the artifact does not exist and
// CheckOnly suppressed generation.
type Result struct {
	URL string `json:"url"`
}

// Service runs the chunk → synthesize → concatenate → cache pipeline.
type Service struct {
	cache  audiostore.Cache
	tts    speech.Synthesizer
	voice  speech.VoiceConfig
	ttl    time.Duration
	limit  int
	logger *slog.Logger
}

// NewService creates the audio pipeline service. ttl bounds signed URL
// validity; the chunk limit defaults to chunk.DefaultLimit.
func NewService(cache audiostore.Cache, tts speech.Synthesizer, voice speech.VoiceConfig, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:  cache,
		tts:    tts,
		voice:  voice,
		ttl:    ttl,
		limit:  chunk.DefaultLimit,
		logger: logger,
	}
}

// SetChunkLimit overrides the per-chunk character ceiling. Values below 1
// are ignored.
func (s *Service) SetChunkLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// Narrate returns a signed reference for the study's audio artifact,
// synthesizing it first when absent. A cached artifact short-circuits
// regardless of CheckOnly. For a given study id, synthesis happens at most
// effectively once; a racing first-time writer is benign because the input
// text is deterministic per study.
func (s *Service) Narrate(ctx context.Context, req Request) (*Result, error) {
	if req.StudyID == "" {
		return nil, fmt.Errorf("%w: studyId is required", apperr.ErrValidation)
	}

	exists, err := s.cache.Exists(req.StudyID)
	if err != nil {
		return nil, err
	}
	if exists {
		url, err := s.cache.SignedURL(req.StudyID, s.ttl)
		if err != nil {
			return nil, err
		}
		return &Result{URL: url}, nil
	}

	if req.CheckOnly {
		return nil, nil
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", apperr.ErrValidation)
	}

	chunks := chunk.Split(req.Text, s.limit)
	s.logger.Info("synthesizing narration",
		slog.String("study_id", req.StudyID),
		slog.Int("chunks", len(chunks)))

	// Fan out one synthesis call per chunk; results slot into their chunk
	// index so concatenation order never depends on completion order.
	parts := make([][]byte, len(chunks))
	g, gCtx := errgroup.WithContext(ctx)
	for i, text := range chunks {
		g.Go(func() error {
			data, err := s.tts.Synthesize(gCtx, text, s.voice)
			if err != nil {
				return fmt.Errorf("%w: chunk %d: %v", apperr.ErrSynthesis, i, err)
			}
			if len(data) == 0 {
				return fmt.Errorf("%w: chunk %d: empty payload", apperr.ErrSynthesis, i)
			}
			parts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	if err := s.cache.Write(req.StudyID, buf.Bytes(), contentType); err != nil {
		return nil, err
	}

	url, err := s.cache.SignedURL(req.StudyID, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Result{URL: url}, nil
}
