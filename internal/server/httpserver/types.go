package httpserver

import (
	"net/http"
	"time"
)

// Options configures listener and endpoint wiring.
type Options struct {
	// Addr is the listen address; ":0" picks a free port.
	Addr string
	// MetricsPath and MetricsHandler expose Prometheus metrics. A nil
	// handler disables the endpoint.
	MetricsPath    string
	MetricsHandler http.Handler
	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration
}
