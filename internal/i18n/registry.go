package i18n

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Locale is a supported locale code such as "en" or "fa".
type Locale string

func (l Locale) String() string { return string(l) }

// Direction is the writing direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// rtlScripts lists ISO 15924 codes of scripts written right-to-left.
var rtlScripts = map[string]struct{}{
	"Arab": {},
	"Hebr": {},
	"Thaa": {},
	"Syrc": {},
	"Nkoo": {},
}

// Definition describes one locale handed to NewRegistry.
type Definition struct {
	Code string
	Name string // optional display name; derived from the tag when empty
}

type entry struct {
	locale Locale
	tag    language.Tag
	name   string
	dir    Direction
}

// Registry is the closed, ordered set of supported locales.
type Registry struct {
	entries []entry
	byCode  map[string]int
	def     Locale
}

// NewRegistry validates the locale definitions and builds a registry.
// Codes must be valid BCP 47 tags, unique (case-insensitively) and must include def.
func NewRegistry(defs []Definition, def string) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.LocaleError("no supported locales configured").Build()
	}

	r := &Registry{byCode: make(map[string]int, len(defs))}
	for _, d := range defs {
		code := strings.ToLower(strings.TrimSpace(d.Code))
		if code == "" {
			return nil, errors.LocaleError("empty locale code").Build()
		}
		if _, dup := r.byCode[code]; dup {
			return nil, errors.LocaleError("duplicate locale code").
				WithContext("code", code).
				Build()
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryLocale, "invalid locale code").
				WithContext("code", code).
				Fatal().
				Build()
		}
		e := entry{
			locale: Locale(code),
			tag:    tag,
			name:   d.Name,
			dir:    directionOf(tag),
		}
		if e.name == "" {
			e.name = selfName(tag, code)
		}
		r.byCode[code] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	defCode := strings.ToLower(strings.TrimSpace(def))
	if _, ok := r.byCode[defCode]; !ok {
		return nil, errors.LocaleError("default locale is not a supported locale").
			WithContext("default", def).
			Build()
	}
	r.def = Locale(defCode)
	return r, nil
}

// MustRegistry is NewRegistry for static locale sets; it panics on invalid input.
func MustRegistry(defs []Definition, def string) *Registry {
	r, err := NewRegistry(defs, def)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the designated default locale.
func (r *Registry) Default() Locale { return r.def }

// Supported returns the locales in configuration order.
func (r *Registry) Supported() []Locale {
	out := make([]Locale, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.locale
	}
	return out
}

// Lookup matches a code case-insensitively against the supported set.
func (r *Registry) Lookup(code string) (Locale, bool) {
	i, ok := r.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return "", false
	}
	return r.entries[i].locale, true
}

// IsSupported reports whether code names a supported locale.
func (r *Registry) IsSupported(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// Normalize returns l when supported and the default locale otherwise.
func (r *Registry) Normalize(l Locale) Locale {
	if s, ok := r.Lookup(string(l)); ok {
		return s
	}
	return r.def
}

// Direction returns the writing direction of a locale. Unknown locales are LTR.
func (r *Registry) Direction(l Locale) Direction {
	if i, ok := r.byCode[strings.ToLower(string(l))]; ok {
		return r.entries[i].dir
	}
	return LTR
}

// DisplayName returns the locale's name in its own language, e.g. "فارسی" for fa.
func (r *Registry) DisplayName(l Locale) string {
	if i, ok := r.byCode[strings.ToLower(string(l))]; ok {
		return r.entries[i].name
	}
	return string(l)
}

func directionOf(tag language.Tag) Direction {
	script, conf := tag.Script()
	if conf == language.No {
		return LTR
	}
	if _, ok := rtlScripts[script.String()]; ok {
		return RTL
	}
	return LTR
}

func selfName(tag language.Tag, fallback string) string {
	name := display.Self.Name(tag)
	if name == "" {
		return fallback
	}
	return cases.Title(tag).String(name)
}
