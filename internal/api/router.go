package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SpoonyCreature/berea/internal/audiostore"
	"github.com/SpoonyCreature/berea/internal/studyservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// The audio download route is signature-gated instead of token-gated.
func NewRouter(svc *studyservice.Service, authEnabled bool, token string,
	sseHandler http.Handler, cache audiostore.Cache, signer *audiostore.Signer) chi.Router {
	h := NewHandler(svc)
	ah := NewAudioHandler(cache, signer)

	r := chi.NewRouter()

	// Signed audio downloads (outside Bearer auth).
	r.Get("/audio/{key}", ah.Download)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Studies.
		r.Get("/studies", h.ListStudies)
		r.Post("/studies", h.CreateStudy)
		r.Get("/studies/{id}", h.GetStudy)
		r.Patch("/studies/{id}", h.UpdateStudy)
		r.Post("/studies/{id}/notes", h.AddStudyNote)
		r.Post("/studies/{id}/audio", h.NarrateStudy)

		// User context.
		r.Post("/notes", h.AddNote)
		r.Get("/coverage", h.GetCoverage)
		r.Post("/coverage", h.RecordCoverage)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
