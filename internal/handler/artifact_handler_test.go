package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"decision-analysis/internal/artifact"
)

func newTestArtifactHandler(t *testing.T) (*ArtifactHandler, *artifact.Store) {
	t.Helper()
	store, err := artifact.New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("failed to build artifact store: %v", err)
	}
	return NewArtifactHandler(store), store
}

func TestArtifactGetReturns404ForUnknownFile(t *testing.T) {
	h, _ := newTestArtifactHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/missing.png", nil)
	req = mux.SetURLVars(req, map[string]string{"filename": "missing.png"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestArtifactGetServesStoredFile(t *testing.T) {
	h, store := newTestArtifactHandler(t)
	ref := store.Put([]byte("fake-png-bytes"), "desktop", "desktop", 1280, 800)
	if ref.Error != "" {
		t.Fatalf("unexpected store error: %s", ref.Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/"+ref.Filename, nil)
	req = mux.SetURLVars(req, map[string]string{"filename": ref.Filename})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "fake-png-bytes" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected content type: %s", rec.Header().Get("Content-Type"))
	}
}

func TestArtifactHealthReportsDirectoryState(t *testing.T) {
	h, _ := newTestArtifactHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/_health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
