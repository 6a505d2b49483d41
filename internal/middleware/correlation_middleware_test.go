package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	CorrelationID(next).ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("expected a generated request id in the handler's context")
	}
	if rec.Header().Get("X-Request-Id") != seen {
		t.Fatalf("expected response header to echo context id %q, got %q", seen, rec.Header().Get("X-Request-Id"))
	}
}

func TestCorrelationIDReusesInboundHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "inbound-id-123")
	rec := httptest.NewRecorder()

	CorrelationID(next).ServeHTTP(rec, req)

	if seen != "inbound-id-123" {
		t.Fatalf("expected inbound id to be reused, got %q", seen)
	}
	if rec.Header().Get("X-Request-Id") != "inbound-id-123" {
		t.Fatalf("expected response header to echo inbound id, got %q", rec.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDFromContextEmptyWhenUnset(t *testing.T) {
	if got := RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
