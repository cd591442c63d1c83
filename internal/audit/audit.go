// Package audit periodically checks which default-locale documents are still
// missing from each translated tree.
package audit

import (
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Auditor computes translation coverage and publishes the result.
type Auditor struct {
	store    *content.Store
	reg      *i18n.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	last    content.CoverageReport
	lastRun time.Time
}

func NewAuditor(store *content.Store, reg *i18n.Registry, recorder metrics.Recorder, logger *slog.Logger) *Auditor {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{store: store, reg: reg, recorder: recorder, logger: logger, now: time.Now}
}

// Run computes a fresh report, logs gaps per locale and updates the
// missing-translations gauge.
func (a *Auditor) Run() content.CoverageReport {
	start := a.now()
	report := content.Coverage(a.store, a.reg)

	for _, lc := range report.Locales {
		a.recorder.SetMissingTranslations(string(lc.Locale), len(lc.Missing))
		if len(lc.Missing) == 0 {
			continue
		}
		a.logger.Info("Missing translations",
			logfields.Locale(string(lc.Locale)),
			logfields.Count(len(lc.Missing)),
			slog.Any("slugs", lc.Missing))
	}
	a.logger.Debug("Translation coverage audit complete",
		logfields.Count(report.MissingCount()),
		logfields.DurationMS(float64(a.now().Sub(start).Microseconds())/1000))

	a.mu.Lock()
	a.last = report
	a.lastRun = start
	a.mu.Unlock()
	return report
}

// Last returns the most recent report and when it ran; ok is false before the first run.
func (a *Auditor) Last() (report content.CoverageReport, at time.Time, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last, a.lastRun, !a.lastRun.IsZero()
}
