package daemon

import (
	"io/fs"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/translations"
)

// Site is the content stack described by one configuration: the locale
// registry, the per-locale document store, the optional lookup cache and the
// UI translations.
type Site struct {
	Registry     *i18n.Registry
	Store        *content.Store
	Cache        *content.Cache // nil when caching is disabled
	Source       content.Source
	Translations *translations.Loader
	// Dirs are the content roots that exist on disk.
	Dirs map[i18n.Locale]string
}

// NewRegistry builds the locale registry from the configured locale list.
func NewRegistry(cfg *config.Config) (*i18n.Registry, error) {
	defs := make([]i18n.Definition, 0, len(cfg.Site.Locales))
	for _, l := range cfg.Site.Locales {
		defs = append(defs, i18n.Definition{Code: l.Code, Name: l.Name})
	}
	return i18n.NewRegistry(defs, cfg.Site.DefaultLocale)
}

// NewSite opens the content roots named by cfg. The default locale's root
// must exist; other missing roots are logged and served by fallback.
func NewSite(cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reg, err := NewRegistry(cfg)
	if err != nil {
		return nil, err
	}

	dirs := make(map[i18n.Locale]string, len(cfg.Site.Locales))
	for _, l := range cfg.Site.Locales {
		locale, _ := reg.Lookup(l.Code)
		dir := cfg.Site.ContentRoot(l.Code)
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			if locale == reg.Default() {
				return nil, errors.ContentError("default content root does not exist").
					WithContext("locale", string(locale)).
					WithContext("path", dir).
					Build()
			}
			logger.Warn("Content root missing, locale served by fallback",
				logfields.Locale(string(locale)), logfields.Path(dir))
			continue
		}
		dirs[locale] = dir
	}

	store, err := content.NewStore(content.DirRoots(dirs), reg.Default(),
		content.WithExtension(cfg.Site.Extension),
		content.WithRecorder(recorder),
		content.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	site := &Site{Registry: reg, Store: store, Source: store, Dirs: dirs}
	if cfg.Server.CacheEnabled() {
		site.Cache = content.NewCache(store)
		site.Source = site.Cache
	}

	var bundles fs.FS
	if p := cfg.Site.TranslationsPath(); p != "" {
		if info, statErr := os.Stat(p); statErr == nil && info.IsDir() {
			bundles = os.DirFS(p)
		}
	}
	site.Translations = translations.NewLoader(bundles, logger)
	return site, nil
}
