// Package page assembles everything the presentation layer needs to render one
// documentation page: the looked-up record, its outline and its blocks.
package page

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/markup"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/toc"
)

// SummaryLength is the maximum length, in runes, of a derived summary.
const SummaryLength = 160

// Alternate is the same page in another supported locale.
type Alternate struct {
	Locale    i18n.Locale    `json:"locale"`
	Name      string         `json:"name"`
	Direction i18n.Direction `json:"dir"`
	URL       string         `json:"url"`
	Current   bool           `json:"current,omitempty"`
}

// View is a fully assembled page.
type View struct {
	Locale     i18n.Locale    `json:"locale"`
	Direction  i18n.Direction `json:"dir"`
	Slug       string         `json:"slug"`
	Record     content.Record `json:"record"`
	TOC        []toc.Entry    `json:"toc"`
	Blocks     []markup.Block `json:"blocks"`
	Summary    string         `json:"summary,omitempty"`
	Alternates []Alternate    `json:"alternates"`
}

// Service builds views from a content source.
type Service struct {
	reg      *i18n.Registry
	src      content.Source
	recorder metrics.Recorder
}

func NewService(reg *i18n.Registry, src content.Source, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{reg: reg, src: src, recorder: recorder}
}

// Build looks up slug in locale (unsupported locales become the default) and
// assembles the view. The outline is only extracted for existing documents;
// blocks are always parsed so the not-found placeholder renders like a page.
func (s *Service) Build(ctx context.Context, slug content.Slug, locale i18n.Locale) View {
	locale = s.reg.Normalize(locale)
	rec := s.src.Load(ctx, slug, locale)

	v := View{
		Locale:    locale,
		Direction: s.reg.Direction(locale),
		Slug:      slug.String(),
		Record:    rec,
		TOC:       []toc.Entry{},
	}

	if rec.Exists {
		start := time.Now()
		v.TOC = toc.Extract(rec.Body)
		s.recorder.ObserveParseDuration("toc", time.Since(start))
	}

	start := time.Now()
	v.Blocks = markup.Parse(rec.Body)
	s.recorder.ObserveParseDuration("blocks", time.Since(start))
	if v.Blocks == nil {
		v.Blocks = []markup.Block{}
	}

	v.Summary = summarize(rec, v.Blocks)
	v.Alternates = s.alternates(slug, locale)
	return v
}

func summarize(rec content.Record, blocks []markup.Block) string {
	if rec.Description != "" {
		return rec.Description
	}
	for _, b := range blocks {
		if b.Kind == markup.KindParagraph {
			return markdown.Excerpt(b.HTML, SummaryLength)
		}
	}
	return ""
}

func (s *Service) alternates(slug content.Slug, current i18n.Locale) []Alternate {
	supported := s.reg.Supported()
	out := make([]Alternate, 0, len(supported))
	for _, l := range supported {
		out = append(out, Alternate{
			Locale:    l,
			Name:      s.reg.DisplayName(l),
			Direction: s.reg.Direction(l),
			URL:       s.reg.DocURL(l, slug),
			Current:   l == current,
		})
	}
	return out
}
