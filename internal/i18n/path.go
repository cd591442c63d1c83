package i18n

import (
	"net/url"
	"strings"
)

// FromPath returns the locale named by the first path segment, or the default.
func (r *Registry) FromPath(p string) Locale {
	if l, ok := r.PathLocale(p); ok {
		return l
	}
	return r.def
}

// PathLocale reports the supported locale named by the first segment of p.
func (r *Registry) PathLocale(p string) (Locale, bool) {
	seg, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	if seg == "" {
		return "", false
	}
	return r.Lookup(seg)
}

// FromQuery returns the locale named by the "lang" parameter, or the default.
func (r *Registry) FromQuery(values url.Values) Locale {
	if l, ok := r.Lookup(values.Get("lang")); ok {
		return l
	}
	return r.def
}

// DocURL builds the public URL of a document. The default locale is served
// from /docs/..., every other locale from /<locale>/docs/....
func (r *Registry) DocURL(l Locale, slug []string) string {
	var b strings.Builder
	if r.Normalize(l) != r.def {
		b.WriteString("/")
		b.WriteString(string(r.Normalize(l)))
	}
	b.WriteString("/docs")
	for _, s := range slug {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// PageURL is the locale-prefixed route served by the HTTP API for a document.
func PageURL(l Locale, slug []string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(string(l))
	if len(slug) == 0 {
		return b.String()
	}
	b.WriteString("/docs")
	for _, s := range slug {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
