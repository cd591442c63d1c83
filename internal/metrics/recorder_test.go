package metrics

import (
	"sync"
	"time"
)

// testRecorder is a Recorder that counts calls; used to verify injection in this package.
type testRecorder struct {
	mu       sync.Mutex
	lookups  map[string]int
	missing  map[string]int
	parses   map[string]int
	requests map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{lookups: map[string]int{}, missing: map[string]int{}, parses: map[string]int{}, requests: map[string]int{}}
}

func (t *testRecorder) ObserveLookupDuration(string, time.Duration) {}
func (t *testRecorder) IncLookup(locale string, outcome LookupOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lookups[locale+"/"+string(outcome)]++
}
func (t *testRecorder) IncLocaleResolution(string, string) {}
func (t *testRecorder) ObserveParseDuration(stage string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parses[stage]++
}
func (t *testRecorder) SetMissingTranslations(locale string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.missing[locale] = n
}
func (t *testRecorder) IncHTTPRequest(route string, _ int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests[route]++
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
