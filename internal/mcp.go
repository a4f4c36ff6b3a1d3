package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SpoonyCreature/berea/internal/audio"
	"github.com/SpoonyCreature/berea/internal/audiostore"
	"github.com/SpoonyCreature/berea/internal/completion"
	"github.com/SpoonyCreature/berea/internal/crossref"
	"github.com/SpoonyCreature/berea/internal/mcpserver"
	"github.com/SpoonyCreature/berea/internal/narration"
	"github.com/SpoonyCreature/berea/internal/speech"
	"github.com/SpoonyCreature/berea/internal/store"
	"github.com/SpoonyCreature/berea/internal/studyservice"
	"github.com/SpoonyCreature/berea/internal/verses"
)

// RunMCP serves the study tools over MCP stdio transport. Logs go to
// stderr so stdout stays clean for the protocol.
func RunMCP(opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Audio.CachePath, 0o755); err != nil {
		return fmt.Errorf("create audio cache dir: %w", err)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	signer := audiostore.NewSigner(cfg.Audio.SigningSecret)
	cache, err := audiostore.NewFS(cfg.Audio.CachePath, signer, "/api/audio")
	if err != nil {
		return fmt.Errorf("init audio cache: %w", err)
	}

	completionSvc := completion.NewClient(cfg.Completion.BaseURL, cfg.Completion.APIKey)
	tts := speech.NewClient(cfg.Speech.BaseURL, cfg.Speech.APIKey)
	voice := speech.VoiceConfig{
		LanguageCode: cfg.Speech.LanguageCode,
		Name:         cfg.Speech.Voice,
		SpeakingRate: cfg.Speech.SpeakingRate,
	}

	svc := studyservice.NewService(db,
		verses.NewSQLResolver(db),
		crossref.NewGenerator(completionSvc, cfg.Completion.Model, logger),
		narration.NewComposer(completionSvc, cfg.Completion.Model),
		audio.NewService(cache, tts, voice, cfg.Audio.URLTTL, logger),
		logger, nil)

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}
