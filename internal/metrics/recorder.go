package metrics

import "time"

// LookupOutcome enumerates content lookup results for counters.
type LookupOutcome string

const (
	LookupHit      LookupOutcome = "hit"
	LookupFallback LookupOutcome = "fallback"
	LookupMiss     LookupOutcome = "miss"
)

// Recorder defines observability hooks for content lookups, locale resolution and parsing.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveLookupDuration(locale string, d time.Duration)
	IncLookup(locale string, outcome LookupOutcome)
	IncLocaleResolution(locale, source string)
	ObserveParseDuration(stage string, d time.Duration) // stage: toc|blocks
	SetMissingTranslations(locale string, n int)
	IncHTTPRequest(route string, status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLookupDuration(string, time.Duration) {}
func (NoopRecorder) IncLookup(string, LookupOutcome)             {}
func (NoopRecorder) IncLocaleResolution(string, string)          {}
func (NoopRecorder) ObserveParseDuration(string, time.Duration)  {}
func (NoopRecorder) SetMissingTranslations(string, int)          {}
func (NoopRecorder) IncHTTPRequest(string, int)                  {}
