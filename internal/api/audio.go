package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SpoonyCreature/berea/internal/audiostore"
)

// AudioHandler serves cached audio artifacts to holders of a valid signed
// reference. The signature is the only credential: the route sits outside
// the Bearer auth group so a signed URL works in a bare <audio> element.
type AudioHandler struct {
	cache  audiostore.Cache
	signer *audiostore.Signer
}

// NewAudioHandler creates an AudioHandler.
func NewAudioHandler(cache audiostore.Cache, signer *audiostore.Signer) *AudioHandler {
	return &AudioHandler{cache: cache, signer: signer}
}

// Download handles GET /audio/{key}?exp=...&sig=...
func (h *AudioHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	exp, err := strconv.ParseInt(r.URL.Query().Get("exp"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid exp"))
		return
	}
	sig := r.URL.Query().Get("sig")
	if !h.signer.Verify(key, exp, sig) {
		writeJSON(w, http.StatusForbidden, errorBody("invalid or expired signature"))
		return
	}

	data, contentType, err := h.cache.Read(key)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	_, _ = w.Write(data)
}
