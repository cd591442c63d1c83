package i18n

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Source names what decided a resolution.
type Source string

const (
	SourceOverride Source = "override"
	SourceHeader   Source = "header"
	SourceDefault  Source = "default"
)

// Preference is the input to resolution. Override is an explicit choice
// (cookie or query value); Header is a raw Accept-Language value.
type Preference struct {
	Override string
	Header   string
}

// Weighted is one parsed Accept-Language entry.
type Weighted struct {
	Tag string
	Q   float64
}

// Resolve picks the locale a request should be served in.
func (r *Registry) Resolve(p Preference) Locale {
	l, _ := r.ResolveWithSource(p)
	return l
}

// ResolveWithSource is Resolve that also reports which input decided.
func (r *Registry) ResolveWithSource(p Preference) (Locale, Source) {
	if p.Override != "" {
		if l, ok := r.Lookup(p.Override); ok {
			return l, SourceOverride
		}
	}

	prefs, ok := ParseAcceptLanguage(p.Header)
	if !ok {
		return r.def, SourceDefault
	}
	for _, w := range prefs {
		if w.Tag == "*" {
			continue
		}
		if l, ok := r.Lookup(w.Tag); ok {
			return l, SourceHeader
		}
		if base, _, found := strings.Cut(w.Tag, "-"); found {
			if l, ok := r.Lookup(base); ok {
				return l, SourceHeader
			}
		}
	}
	return r.def, SourceDefault
}

// ParseAcceptLanguage splits a language-preference header into lower-cased tags
// ordered by descending weight, stable on ties. Empty entries and entries with
// q=0 are dropped. ok is false when a weight is not a number in [0,1]; callers
// then treat the whole header as absent.
func ParseAcceptLanguage(header string) ([]Weighted, bool) {
	var out []Weighted
	for _, raw := range strings.Split(header, ",") {
		params := strings.Split(raw, ";")
		tag := strings.ToLower(strings.TrimSpace(params[0]))
		q := 1.0
		for _, param := range params[1:] {
			param = strings.TrimSpace(param)
			value, isQ := strings.CutPrefix(param, "q=")
			if !isQ {
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || math.IsNaN(f) || f < 0 || f > 1 {
				return nil, false
			}
			q = f
		}
		if tag == "" || q == 0 {
			continue
		}
		out = append(out, Weighted{Tag: tag, Q: q})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Q > out[j].Q })
	return out, true
}
