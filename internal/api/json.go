package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SpoonyCreature/berea/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps the error taxonomy onto HTTP statuses. Upstream service
// faults surface as 502; everything unclassified is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody("forbidden"))
	case errors.Is(err, apperr.ErrUpstreamFormat),
		errors.Is(err, apperr.ErrGeneration),
		errors.Is(err, apperr.ErrSynthesis):
		slog.Error("upstream service fault", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("upstream service error"))
	default:
		slog.Error("internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
