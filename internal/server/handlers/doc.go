// Package handlers contains the HTTP handlers of the docsite API.
//
// This package provides handlers for:
//   - Documents, navigation trees and UI translations (api.go)
//   - Locale resolution and rendered page views (pages.go)
//   - Health and translation coverage (monitoring.go)
//   - Shared response helper functions
//
// Every handler reports failures as classified errors through the
// foundation/errors HTTP adapter, so callers see a uniform JSON error body.
package handlers
