package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestScanRejectsEmptyBody(t *testing.T) {
	h := NewDecisionHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/decision-scan", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.Scan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestScanRejectsMissingURLForURLMode(t *testing.T) {
	h := NewDecisionHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/decision-scan", strings.NewReader(`{"mode":"url"}`))
	rec := httptest.NewRecorder()

	h.Scan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing url, got %d", rec.Code)
	}
}

func TestScanRejectsMalformedJSON(t *testing.T) {
	h := NewDecisionHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/decision-scan", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Scan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestScanPDFRejectsMissingURLForURLMode(t *testing.T) {
	h := NewDecisionHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/api/decision-scan/report.pdf", strings.NewReader(`{"mode":"url"}`))
	rec := httptest.NewRecorder()

	h.ScanPDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing url, got %d", rec.Code)
	}
}
