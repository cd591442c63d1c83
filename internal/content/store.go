package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/observability"
)

// DefaultExtension is the document file extension used when none is configured.
const DefaultExtension = ".mdx"

// Store reads documents from one fs.FS per locale.
type Store struct {
	roots    map[i18n.Locale]fs.FS
	def      i18n.Locale
	ext      string
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithExtension(ext string) Option {
	return func(s *Store) {
		if ext != "" {
			s.ext = ext
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore builds a store over the given roots. The default locale must have a root.
func NewStore(roots map[i18n.Locale]fs.FS, def i18n.Locale, opts ...Option) (*Store, error) {
	if _, ok := roots[def]; !ok {
		return nil, errors.ConfigError("default locale has no content root").
			WithContext("locale", string(def)).
			Build()
	}
	s := &Store{
		roots:    make(map[i18n.Locale]fs.FS, len(roots)),
		def:      def,
		ext:      DefaultExtension,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for l, root := range roots {
		s.roots[l] = root
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DirRoots opens each directory with os.DirFS.
func DirRoots(dirs map[i18n.Locale]string) map[i18n.Locale]fs.FS {
	roots := make(map[i18n.Locale]fs.FS, len(dirs))
	for l, dir := range dirs {
		roots[l] = os.DirFS(dir)
	}
	return roots
}

// Default returns the authoritative locale.
func (s *Store) Default() i18n.Locale { return s.def }

// Extension returns the document extension, including the dot.
func (s *Store) Extension() string { return s.ext }

// Locales returns the locales with a content root, default first then sorted.
func (s *Store) Locales() []i18n.Locale {
	out := make([]i18n.Locale, 0, len(s.roots))
	for l := range s.roots {
		if l != s.def {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return append([]i18n.Locale{s.def}, out...)
}

// Load returns the document for slug in locale, falling back once to the
// default locale and then to the not-found record. Locales without a root are
// served from the default root.
func (s *Store) Load(ctx context.Context, slug Slug, locale i18n.Locale) Record {
	start := time.Now()
	served := locale
	if _, ok := s.roots[served]; !ok {
		served = s.def
	}

	rec, outcome := s.lookup(ctx, slug, locale, served)

	s.recorder.IncLookup(string(served), outcome)
	s.recorder.ObserveLookupDuration(string(served), time.Since(start))
	return rec
}

func (s *Store) lookup(ctx context.Context, slug Slug, requested, served i18n.Locale) (Record, metrics.LookupOutcome) {
	if !slug.Valid() {
		observability.Debug(ctx, s.logger, "Rejected invalid slug",
			logfields.Slug(slug.String()),
			logfields.Requested(string(requested)))
		return NotFound(requested, s.def), metrics.LookupMiss
	}

	doc, err := s.read(ctx, served, slug)
	if err == nil {
		outcome := metrics.LookupHit
		if served != requested {
			outcome = metrics.LookupFallback
		}
		return recordOf(doc, requested, served), outcome
	}

	if served != s.def {
		observability.Debug(ctx, s.logger, "Falling back to default locale",
			logfields.Slug(slug.String()),
			logfields.Requested(string(requested)),
			logfields.Locale(string(s.def)),
			logfields.Error(err))
		if doc, defErr := s.read(ctx, s.def, slug); defErr == nil {
			return recordOf(doc, requested, s.def), metrics.LookupFallback
		}
	}

	observability.Debug(ctx, s.logger, "Document not found",
		logfields.Slug(slug.String()),
		logfields.Requested(string(requested)),
		logfields.Error(err))
	return NotFound(requested, s.def), metrics.LookupMiss
}

// Document reads and parses a single document without fallback.
func (s *Store) Document(ctx context.Context, slug Slug, locale i18n.Locale) (*docmodel.Document, error) {
	if !slug.Valid() {
		return nil, errors.ValidationError("invalid slug").
			WithContext("slug", slug.String()).
			Build()
	}
	if _, ok := s.roots[locale]; !ok {
		return nil, errors.NotFoundError("locale has no content root").
			WithContext("locale", string(locale)).
			Build()
	}
	return s.read(ctx, locale, slug)
}

func (s *Store) read(ctx context.Context, locale i18n.Locale, slug Slug) (*docmodel.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return docmodel.ParseFS(s.roots[locale], slug.file(s.ext))
}

func recordOf(doc *docmodel.Document, requested, served i18n.Locale) Record {
	return Record{
		Title:       doc.Meta.Title,
		Description: doc.Meta.Description,
		Body:        doc.Body,
		Exists:      true,
		Locale:      served,
		Requested:   requested,
		Fallback:    served != requested,
		Icon:        doc.Meta.Icon,
		Order:       doc.Meta.Order,
		Fingerprint: doc.Fingerprint,
	}
}

// Slugs lists every document under a locale's root, sorted. The index
// document of a folder is listed with a trailing "index" segment except at
// the root, where it is the empty slug.
func (s *Store) Slugs(locale i18n.Locale) []Slug {
	root, ok := s.roots[locale]
	if !ok {
		return nil
	}
	var slugs []Slug
	_ = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("Failed to walk content root",
				logfields.Locale(string(locale)),
				logfields.Path(p),
				logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != s.ext || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel := strings.TrimSuffix(p, s.ext)
		if rel == "index" {
			slugs = append(slugs, Slug{})
			return nil
		}
		slugs = append(slugs, ParseSlug(rel))
		return nil
	})
	sort.Slice(slugs, func(i, j int) bool { return slugs[i].String() < slugs[j].String() })
	return slugs
}

// SlugForFile maps a path relative to a content root back to its slug.
func (s *Store) SlugForFile(rel string) (Slug, bool) {
	rel = path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	if path.Ext(rel) != s.ext {
		return nil, false
	}
	rel = strings.TrimSuffix(rel, s.ext)
	if rel == "index" {
		return Slug{}, true
	}
	return ParseSlug(rel), true
}
