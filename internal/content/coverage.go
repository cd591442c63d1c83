package content

import (
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/util/sets"
)

// LocaleCoverage is the translation state of one non-default locale.
type LocaleCoverage struct {
	Locale     i18n.Locale `json:"locale"`
	Translated int         `json:"translated"`
	Missing    []string    `json:"missing"`
}

// CoverageReport compares every translated tree against the default tree.
type CoverageReport struct {
	Default i18n.Locale      `json:"default"`
	Total   int              `json:"total"`
	Locales []LocaleCoverage `json:"locales"`
}

// MissingCount sums the missing documents over all locales.
func (r CoverageReport) MissingCount() int {
	n := 0
	for _, l := range r.Locales {
		n += len(l.Missing)
	}
	return n
}

// Coverage lists, for each supported non-default locale, the default-locale
// documents that have no localized counterpart. Locales without a content
// root miss everything.
func Coverage(store *Store, reg *i18n.Registry) CoverageReport {
	reference := store.Slugs(store.Default())
	report := CoverageReport{Default: store.Default(), Total: len(reference)}

	for _, l := range reg.Supported() {
		if l == store.Default() {
			continue
		}
		have := sets.New[string]()
		for _, s := range store.Slugs(l) {
			have.Add(s.String())
		}
		lc := LocaleCoverage{Locale: l, Missing: []string{}}
		for _, s := range reference {
			if have.Has(s.String()) {
				lc.Translated++
				continue
			}
			lc.Missing = append(lc.Missing, s.file(""))
		}
		report.Locales = append(report.Locales, lc)
	}
	return report
}
