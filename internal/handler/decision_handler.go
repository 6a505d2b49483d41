package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"decision-analysis/internal/middleware"
	"decision-analysis/internal/model"
	"decision-analysis/internal/obs"
	"decision-analysis/internal/orchestrator"
	"decision-analysis/internal/report"
)

// writeJSON writes a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, tag, reason string, status int) {
	writeJSON(w, map[string]string{"error": tag, "reason": reason}, status)
}

// DecisionHandler serves the unified decision-scan endpoint.
type DecisionHandler struct {
	orchestrator *orchestrator.Orchestrator
}

// NewDecisionHandler wires the orchestrator the handler delegates to.
func NewDecisionHandler(o *orchestrator.Orchestrator) *DecisionHandler {
	return &DecisionHandler{orchestrator: o}
}

type decisionScanRequest struct {
	Mode    model.Mode   `json:"mode"`
	URL     string       `json:"url"`
	Text    string       `json:"text"`
	Goal    model.Goal   `json:"goal"`
	Locale  model.Locale `json:"locale"`
	Refresh bool         `json:"refresh"`
}

// Scan handles POST /api/decision-scan. Body is JSON for mode=url/text, or
// multipart/form-data with an "image" file part for mode=image (spec.md
// §6).
func (h *DecisionHandler) Scan(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeJSONError(w, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}
	req.RequestID = middleware.RequestIDFromContext(r.Context())

	rep, err := h.orchestrator.Run(r.Context(), req)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeJSONError(w, "validation_error", ve.Error(), http.StatusBadRequest)
			return
		}
		obs.ForRequest(req.RequestID).Error().Err(err).Msg("decision scan failed")
		writeJSONError(w, "internal_invariant_violation", "analysis could not be completed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, rep, http.StatusOK)
}

// ScanPDF handles POST /api/decision-scan/report.pdf: the same request body
// as Scan, rendered as a PDF instead of JSON. Opt-in — nothing in the
// orchestrator's pipeline requires this route (spec.md §3.2 supplemented
// PDF export feature).
func (h *DecisionHandler) ScanPDF(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeJSONError(w, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}
	req.RequestID = middleware.RequestIDFromContext(r.Context())

	rep, err := h.orchestrator.Run(r.Context(), req)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeJSONError(w, "validation_error", ve.Error(), http.StatusBadRequest)
			return
		}
		obs.ForRequest(req.RequestID).Error().Err(err).Msg("decision scan failed")
		writeJSONError(w, "internal_invariant_violation", "analysis could not be completed", http.StatusInternalServerError)
		return
	}

	buf, err := report.GeneratePDF(rep.Summary.URL, rep.HumanReport, rep.ReportSections)
	if err != nil {
		obs.ForRequest(req.RequestID).Error().Err(err).Msg("pdf render failed")
		writeJSONError(w, "internal_invariant_violation", "pdf render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="decision-analysis-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *DecisionHandler) parseRequest(r *http.Request) (model.AnalysisRequest, error) {
	contentType := r.Header.Get("Content-Type")

	if len(contentType) >= len("multipart/form-data") && contentType[:len("multipart/form-data")] == "multipart/form-data" {
		return h.parseMultipart(r)
	}

	var body decisionScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if err == io.EOF {
			return model.AnalysisRequest{}, &model.ValidationError{Field: "body", Reason: "request body is required"}
		}
		return model.AnalysisRequest{}, &model.ValidationError{Field: "body", Reason: "malformed JSON body"}
	}

	req := model.AnalysisRequest{
		Mode:    body.Mode,
		URL:     body.URL,
		Text:    body.Text,
		Goal:    body.Goal,
		Locale:  body.Locale,
		Refresh: body.Refresh,
	}
	if err := req.Validate(); err != nil {
		return model.AnalysisRequest{}, err
	}
	return req, nil
}

func (h *DecisionHandler) parseMultipart(r *http.Request) (model.AnalysisRequest, error) {
	const maxImageBytes = 10 << 20
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return model.AnalysisRequest{}, &model.ValidationError{Field: "body", Reason: "malformed multipart body"}
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return model.AnalysisRequest{}, &model.ValidationError{Field: "image", Reason: "image file part is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return model.AnalysisRequest{}, &model.ValidationError{Field: "image", Reason: "failed to read image"}
	}

	req := model.AnalysisRequest{
		Mode:   model.ModeImage,
		Image:  data,
		Goal:   model.Goal(r.FormValue("goal")),
		Locale: model.Locale(r.FormValue("locale")),
	}
	if err := req.Validate(); err != nil {
		return model.AnalysisRequest{}, err
	}
	return req, nil
}
