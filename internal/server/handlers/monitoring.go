package handlers

import (
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// MonitoringHandlers contains health and coverage handlers.
type MonitoringHandlers struct {
	deps         Deps
	errorAdapter *errors.HTTPErrorAdapter
}

func NewMonitoringHandlers(deps Deps) *MonitoringHandlers {
	deps = deps.withDefaults()
	return &MonitoringHandlers{deps: deps, errorAdapter: errors.NewHTTPErrorAdapter(deps.Logger)}
}

// HandleHealthCheck handles the health check endpoint.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.deps.StartTime).Seconds(),
		Locales:   len(h.deps.Registry.Supported()),
	}
	if h.deps.Store != nil {
		health.Documents = len(h.deps.Store.Slugs(h.deps.Store.Default()))
	}

	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write health response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleCoverage returns the latest audit report, running one when no
// scheduled audit has completed yet.
func (h *MonitoringHandlers) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	if h.deps.Auditor == nil {
		err := errors.ServerError("coverage audit is not configured").Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	report, at, ok := h.deps.Auditor.Last()
	if !ok || r.URL.Query().Get("refresh") == "1" {
		report = h.deps.Auditor.Run()
		_, at, _ = h.deps.Auditor.Last()
	}

	resp := responses.CoverageResponse{GeneratedAt: at.UTC(), Missing: report.MissingCount(), Report: report}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write coverage response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
