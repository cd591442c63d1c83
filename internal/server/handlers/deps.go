package handlers

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/page"
	"git.home.luguber.info/inful/docsite/internal/translations"
)

// Deps are the services shared by all handler groups.
type Deps struct {
	Registry *i18n.Registry
	// Source answers document lookups; usually the cache in front of Store.
	Source       content.Source
	Store        *content.Store
	Pages        *page.Service
	Translations *translations.Loader
	Auditor      *audit.Auditor
	Recorder     metrics.Recorder
	Logger       *slog.Logger
	StartTime    time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Source == nil {
		d.Source = d.Store
	}
	if d.Recorder == nil {
		d.Recorder = metrics.NoopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.StartTime.IsZero() {
		d.StartTime = time.Now()
	}
	if d.Pages == nil {
		d.Pages = page.NewService(d.Registry, d.Source, d.Recorder)
	}
	return d
}
