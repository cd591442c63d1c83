package content

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/i18n"
)

const (
	NotFoundTitle       = "Page Not Found"
	NotFoundDescription = "Content not found"
	NotFoundBody        = "# Page Not Found\n\nThis content is not available in the selected language."
)

// Slug is the ordered path segments identifying a document independent of locale.
type Slug []string

// ParseSlug splits a slash-separated slug, dropping empty segments.
func ParseSlug(s string) Slug {
	var out Slug
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func (s Slug) String() string {
	return strings.Join(s, "/")
}

// Valid reports whether every segment is a plain name. Empty, "." and ".."
// segments and segments containing a separator are rejected so a slug can
// never address a file outside its content root.
func (s Slug) Valid() bool {
	for _, seg := range s {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `/\`) || strings.ContainsRune(seg, 0) {
			return false
		}
	}
	return true
}

// file returns the document path of the slug relative to a content root.
func (s Slug) file(ext string) string {
	if len(s) == 0 {
		return "index" + ext
	}
	return s.String() + ext
}

// Record is the result of a lookup. Empty Title or Description means the
// document does not set them.
type Record struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Body        string      `json:"content"`
	Exists      bool        `json:"exists"`
	Locale      i18n.Locale `json:"locale"`
	Requested   i18n.Locale `json:"requested_locale"`
	Fallback    bool        `json:"fallback"`
	Icon        string      `json:"icon,omitempty"`
	Order       int         `json:"order,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
}

// NotFound is the placeholder record returned when no tree has the document.
func NotFound(requested, served i18n.Locale) Record {
	return Record{
		Title:       NotFoundTitle,
		Description: NotFoundDescription,
		Body:        NotFoundBody,
		Exists:      false,
		Locale:      served,
		Requested:   requested,
		Fallback:    served != requested,
	}
}

// Source is anything that can answer a document lookup.
type Source interface {
	Load(ctx context.Context, slug Slug, locale i18n.Locale) Record
}
