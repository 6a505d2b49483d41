package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"decision-analysis/internal/handler"
)

func TestNewRouterServesHealthRoute(t *testing.T) {
	r := New(Handlers{
		Decision: handler.NewDecisionHandler(nil),
		Artifact: handler.NewArtifactHandler(nil),
		Health:   handler.NewHealthHandler(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
}

func TestNewRouterStampsCorrelationIDOnEveryRoute(t *testing.T) {
	r := New(Handlers{
		Decision: handler.NewDecisionHandler(nil),
		Artifact: handler.NewArtifactHandler(nil),
		Health:   handler.NewHealthHandler(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected the correlation middleware to stamp a request id")
	}
}

func TestNewRouterRegistersAliasEndpoints(t *testing.T) {
	r := New(Handlers{
		Decision: handler.NewDecisionHandler(nil),
		Artifact: handler.NewArtifactHandler(nil),
		Health:   handler.NewHealthHandler(),
	})

	for _, alias := range []string{
		"/api/brain/decision-engine-url",
		"/api/brain/decision-engine-image",
		"/api/proxy/decision-scan",
	} {
		req := httptest.NewRequest(http.MethodPost, alias, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code == http.StatusNotFound {
			t.Fatalf("expected alias %s to be routed, got 404", alias)
		}
	}
}

func TestNewRouterRejectsUnknownMethod(t *testing.T) {
	r := New(Handlers{
		Decision: handler.NewDecisionHandler(nil),
		Artifact: handler.NewArtifactHandler(nil),
		Health:   handler.NewHealthHandler(),
	})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST /health, got %d", rec.Code)
	}
}
