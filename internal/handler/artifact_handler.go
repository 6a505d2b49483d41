package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"decision-analysis/internal/artifact"
)

// ArtifactHandler serves stored screenshots and the store's health report.
type ArtifactHandler struct {
	store *artifact.Store
}

// NewArtifactHandler wires the Artifact Store the handler reads from.
func NewArtifactHandler(store *artifact.Store) *ArtifactHandler {
	return &ArtifactHandler{store: store}
}

// Get handles GET /api/artifacts/{filename} with a long immutable
// Cache-Control header, since filenames are epoch-unique (spec.md §6).
func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]
	data, ok := h.store.Get(filename)
	if !ok {
		writeJSONError(w, "not_found", "artifact not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Health handles GET /api/artifacts/_health.
func (h *ArtifactHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.store.Health(), http.StatusOK)
}
