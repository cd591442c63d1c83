package httpserver

import (
	"net/http"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/handlers"
	smw "git.home.luguber.info/inful/docsite/internal/server/middleware"
)

// Paths that are never treated as locale-prefixed page routes.
var localeExempt = []string{"/api/", "/healthz", "/_next/", "/favicon.ico"}

func (s *Server) routes() http.Handler {
	api := handlers.NewAPIHandlers(s.deps)
	pages := handlers.NewPageHandlers(s.deps)
	monitoring := handlers.NewMonitoringHandlers(s.deps)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", pages.HandleRoot)
	mux.HandleFunc("GET /{locale}", pages.HandlePage)
	mux.HandleFunc("GET /{locale}/docs", pages.HandlePage)
	mux.HandleFunc("GET /{locale}/docs/{slug...}", pages.HandlePage)

	mux.HandleFunc("GET /api/content", api.HandleContent)
	mux.HandleFunc("GET /api/tree/{locale}", api.HandleTree)
	mux.HandleFunc("GET /api/translations/{locale}", api.HandleTranslations)
	mux.HandleFunc("GET /api/locale", api.HandleLocale)
	mux.HandleFunc("GET /api/coverage", monitoring.HandleCoverage)
	mux.HandleFunc("GET /healthz", monitoring.HandleHealthCheck)

	exempt := localeExempt
	if s.opts.MetricsHandler != nil && s.opts.MetricsPath != "" {
		mux.Handle("GET "+s.opts.MetricsPath, s.opts.MetricsHandler)
		exempt = append(append([]string{}, localeExempt...), s.opts.MetricsPath)
	}

	adapter := derrors.NewHTTPErrorAdapter(s.logger)
	chain := smw.Chain(s.logger, adapter, s.deps.Recorder)
	return chain(smw.LocalePrefix(s.deps.Registry, exempt...)(mux))
}
