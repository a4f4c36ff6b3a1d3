package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SpoonyCreature/berea/internal/study"
	"github.com/SpoonyCreature/berea/internal/studyservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *studyservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *studyservice.Service) *Handler {
	return &Handler{svc: svc}
}

// CreateStudy handles POST /studies.
func (h *Handler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	owner := userID(r)
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("X-User-Id header is required"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	st, err := h.svc.CreateStudy(r.Context(), studyservice.CreateInput{
		Owner:           owner,
		Query:           req.Query,
		References:      req.References,
		Translation:     req.Translation,
		IncludeOriginal: req.IncludeOriginal,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

// GetStudy handles GET /studies/{id}.
func (h *Handler) GetStudy(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetStudy(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ListStudies handles GET /studies.
func (h *Handler) ListStudies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, err := h.svc.ListStudies(r.Context(), userID(r), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []study.BibleStudy{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"studies": items})
}

// UpdateStudy handles PATCH /studies/{id}.
func (h *Handler) UpdateStudy(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	st, err := h.svc.UpdateStudy(r.Context(), userID(r), chi.URLParam(r, "id"), studyservice.UpdatePatch{
		IsPublic:    req.IsPublic,
		Explanation: req.Explanation,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// AddStudyNote handles POST /studies/{id}/notes.
func (h *Handler) AddStudyNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	st, err := h.svc.AddStudyNote(r.Context(), userID(r), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// NarrateStudy handles POST /studies/{id}/audio. A cache miss in probe
// mode returns 204 with no body.
func (h *Handler) NarrateStudy(w http.ResponseWriter, r *http.Request) {
	var req NarrateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}
	res, err := h.svc.NarrateStudy(r.Context(), userID(r), chi.URLParam(r, "id"), req.CheckOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AddNote handles POST /notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	uc, err := h.svc.AddNote(r.Context(), userID(r), req.Reference, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uc)
}

// GetCoverage handles GET /coverage.
func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Coverage(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// RecordCoverage handles POST /coverage.
func (h *Handler) RecordCoverage(w http.ResponseWriter, r *http.Request) {
	var req CoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	report, err := h.svc.RecordCoverage(r.Context(), userID(r), req.Book, req.Chapters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
