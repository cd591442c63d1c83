package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	lookupDuration      *prom.HistogramVec
	lookups             *prom.CounterVec
	localeResolutions   *prom.CounterVec
	parseDuration       *prom.HistogramVec
	missingTranslations *prom.GaugeVec
	httpRequests        *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		lookupDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "content_lookup_duration_seconds",
			Help:      "Duration of content lookups including fallback",
			Buckets:   prom.DefBuckets,
		}, []string{"locale"}),
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "content_lookups_total",
			Help:      "Content lookups by requested locale and outcome",
		}, []string{"locale", "outcome"}),
		localeResolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "locale_resolutions_total",
			Help:      "Resolved locales by deciding source (override, header, default)",
		}, []string{"locale", "source"}),
		parseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "parse_duration_seconds",
			Help:      "Duration of TOC extraction and block parsing",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"stage"}),
		missingTranslations: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docsite",
			Name:      "missing_translations",
			Help:      "Documents present in the default locale but missing in a locale",
		}, []string{"locale"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.lookupDuration, pr.lookups, pr.localeResolutions, pr.parseDuration, pr.missingTranslations, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveLookupDuration(locale string, d time.Duration) {
	if p == nil || p.lookupDuration == nil {
		return
	}
	p.lookupDuration.WithLabelValues(locale).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLookup(locale string, outcome LookupOutcome) {
	if p == nil || p.lookups == nil {
		return
	}
	p.lookups.WithLabelValues(locale, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncLocaleResolution(locale, source string) {
	if p == nil || p.localeResolutions == nil {
		return
	}
	p.localeResolutions.WithLabelValues(locale, source).Inc()
}

func (p *PrometheusRecorder) ObserveParseDuration(stage string, d time.Duration) {
	if p == nil || p.parseDuration == nil {
		return
	}
	p.parseDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetMissingTranslations(locale string, n int) {
	if p == nil || p.missingTranslations == nil {
		return
	}
	p.missingTranslations.WithLabelValues(locale).Set(float64(n))
}

func (p *PrometheusRecorder) IncHTTPRequest(route string, status int) {
	if p == nil || p.httpRequests == nil {
		return
	}
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
