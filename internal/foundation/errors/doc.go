// Package errors provides the classified error primitives used across docsite.
//
// Core lookups (locale resolution, content loading, TOC extraction, block parsing)
// never return errors; they fold failures into sentinel values. Classified errors
// live at the edges: configuration loading, CLI commands, HTTP request validation
// and server start-up.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryConfig, "unknown default locale").
//		WithContext("default_locale", code).
//		WithCause(parseErr).
//		Build()
package errors
