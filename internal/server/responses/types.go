// Package responses defines the JSON bodies of the docsite HTTP API that are
// not domain types in their own right.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Locales   int       `json:"locales"`
	Documents int       `json:"documents"`
}

// LocaleInfo describes one supported locale.
type LocaleInfo struct {
	Code      i18n.Locale    `json:"code"`
	Name      string         `json:"name"`
	Direction i18n.Direction `json:"dir"`
	Default   bool           `json:"default,omitempty"`
}

// LocaleResponse is the outcome of resolving the request's locale.
type LocaleResponse struct {
	Locale    i18n.Locale    `json:"locale"`
	Direction i18n.Direction `json:"direction"`
	Source    i18n.Source    `json:"source"`
	Supported []LocaleInfo   `json:"supported"`
}

// CoverageResponse wraps the latest translation coverage report.
type CoverageResponse struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Missing     int                    `json:"missing"`
	Report      content.CoverageReport `json:"report"`
}
