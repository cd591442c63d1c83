// Package metrics provides the observability hooks for docsite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so lookups, locale resolution and parsing never need nil checks:
//
//	store := content.NewStore(roots, "en", ".mdx").WithRecorder(recorder)
//
// PrometheusRecorder is activated by the serve command when
// monitoring.metrics.enabled is set; HTTPHandler exposes its registry.
package metrics
