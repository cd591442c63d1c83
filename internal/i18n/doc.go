// Package i18n holds the closed set of supported locales and decides which one
// a request is served in.
//
// A Registry is built once at startup from configuration and is read-only
// afterwards, so it is safe for concurrent use. Resolution never fails: when
// no preference matches, the registry's default locale is returned.
package i18n
