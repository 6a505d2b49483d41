package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"decision-analysis/internal/handler"
	"decision-analysis/internal/middleware"
)

// Handlers bundles the handlers New wires onto their routes.
type Handlers struct {
	Decision *handler.DecisionHandler
	Artifact *handler.ArtifactHandler
	Health   *handler.HealthHandler
}

// New creates and configures the HTTP router (spec.md §6's inbound
// endpoint contract).
func New(h Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.CorrelationID)

	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	r.HandleFunc("/api/decision-scan", h.Decision.Scan).Methods(http.MethodPost)
	r.HandleFunc("/api/decision-scan/report.pdf", h.Decision.ScanPDF).Methods(http.MethodPost)
	r.HandleFunc("/api/artifacts/_health", h.Artifact.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/artifacts/{filename}", h.Artifact.Get).Methods(http.MethodGet)

	// Backwards-compatible aliases for the single canonical endpoint above;
	// thin forwarders, no additional semantics (spec.md §9).
	for _, alias := range []string{
		"/api/brain/decision-engine-url",
		"/api/brain/decision-engine-image",
		"/api/proxy/decision-scan",
	} {
		r.HandleFunc(alias, h.Decision.Scan).Methods(http.MethodPost)
	}

	return r
}
