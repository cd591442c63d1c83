package handlers

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/page"
	"git.home.luguber.info/inful/docsite/internal/translations"
)

type resolutionRecorder struct {
	metrics.NoopRecorder
	resolutions []string
}

func (r *resolutionRecorder) IncLocaleResolution(locale, source string) {
	r.resolutions = append(r.resolutions, locale+":"+source)
}

func testDeps(t *testing.T, rec metrics.Recorder) Deps {
	t.Helper()
	reg, err := i18n.NewRegistry([]i18n.Definition{{Code: "en"}, {Code: "fa"}, {Code: "ru"}}, "en")
	require.NoError(t, err)
	store, err := content.NewStore(map[i18n.Locale]fs.FS{
		"en": fstest.MapFS{
			"index.mdx":       {Data: []byte("---\ntitle: Home\n---\n## Welcome\n\nHello.\n")},
			"panel/setup.mdx": {Data: []byte("---\ntitle: Setup\ndescription: Install the panel\n---\n## Install\n")},
		},
		"fa": fstest.MapFS{
			"index.mdx": {Data: []byte("---\ntitle: خانه\n---\nسلام\n")},
		},
	}, "en")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	src := content.NewCache(store)
	return Deps{
		Registry: reg,
		Source:   src,
		Store:    store,
		Pages:    page.NewService(reg, src, rec),
		Translations: translations.NewLoader(fstest.MapFS{
			"fa.json": {Data: []byte(`{"documentation":"مستندات"}`)},
		}, logger),
		Auditor:  audit.NewAuditor(store, reg, rec, logger),
		Recorder: rec,
		Logger:   logger,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func serve(h http.HandlerFunc, pattern, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHandleContent(t *testing.T) {
	h := NewAPIHandlers(testDeps(t, nil))

	t.Run("missing slug", func(t *testing.T) {
		w := serve(h.HandleContent, "GET /api/content", "/api/content?locale=fa")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "Slug is required", body["error"])
		assert.Equal(t, "validation", body["code"])
	})

	t.Run("traversal", func(t *testing.T) {
		w := serve(h.HandleContent, "GET /api/content", "/api/content?slug=../secret")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("fallback to default locale", func(t *testing.T) {
		w := serve(h.HandleContent, "GET /api/content", "/api/content?slug=panel/setup&locale=fa")
		require.Equal(t, http.StatusOK, w.Code)
		rec := decode[content.Record](t, w)
		assert.True(t, rec.Exists)
		assert.Equal(t, "Setup", rec.Title)
		assert.Equal(t, i18n.Locale("en"), rec.Locale)
		assert.Equal(t, i18n.Locale("fa"), rec.Requested)
		assert.True(t, rec.Fallback)
		assert.Equal(t, "en", w.Header().Get("Content-Language"))
		assert.Equal(t, `"`+rec.Fingerprint+`"`, w.Header().Get("ETag"))
	})

	t.Run("root index and unknown locale", func(t *testing.T) {
		w := serve(h.HandleContent, "GET /api/content", "/api/content?slug=/&locale=de")
		require.Equal(t, http.StatusOK, w.Code)
		rec := decode[content.Record](t, w)
		assert.Equal(t, "Home", rec.Title)
		assert.Equal(t, i18n.Locale("en"), rec.Locale)
	})

	t.Run("not found", func(t *testing.T) {
		w := serve(h.HandleContent, "GET /api/content", "/api/content?slug=nope")
		require.Equal(t, http.StatusOK, w.Code)
		rec := decode[content.Record](t, w)
		assert.False(t, rec.Exists)
		assert.Equal(t, content.NotFoundTitle, rec.Title)
		assert.Empty(t, w.Header().Get("ETag"))
	})

	t.Run("conditional request", func(t *testing.T) {
		first := serve(h.HandleContent, "GET /api/content", "/api/content?slug=panel/setup")
		etag := first.Header().Get("ETag")
		require.NotEmpty(t, etag)

		w := serve(h.HandleContent, "GET /api/content", "/api/content?slug=panel/setup", func(r *http.Request) {
			r.Header.Set("If-None-Match", `"other", W/`+etag)
		})
		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleTreeAndTranslations(t *testing.T) {
	h := NewAPIHandlers(testDeps(t, nil))

	w := serve(h.HandleTree, "GET /api/tree/{locale}", "/api/tree/fa")
	require.Equal(t, http.StatusOK, w.Code)
	tree := decode[content.Node](t, w)
	assert.Equal(t, content.NodeRoot, tree.Type)
	assert.NotEmpty(t, tree.Children)

	w = serve(h.HandleTree, "GET /api/tree/{locale}", "/api/tree/xx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "locale", decode[map[string]any](t, w)["code"])

	w = serve(h.HandleTranslations, "GET /api/translations/{locale}", "/api/translations/fa")
	require.Equal(t, http.StatusOK, w.Code)
	b := decode[translations.Bundle](t, w)
	assert.Equal(t, "مستندات", b.Documentation)
	assert.Equal(t, translations.English().AppName, b.AppName)
}

func TestHandleLocale(t *testing.T) {
	rec := &resolutionRecorder{}
	h := NewAPIHandlers(testDeps(t, rec))

	w := serve(h.HandleLocale, "GET /api/locale", "/api/locale", func(r *http.Request) {
		r.Header.Set("Accept-Language", "de-DE,fa;q=0.8,en;q=0.5")
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "fa", resp["locale"])
	assert.Equal(t, "rtl", resp["direction"])
	assert.Equal(t, "header", resp["source"])
	assert.Len(t, resp["supported"], 3)

	w = serve(h.HandleLocale, "GET /api/locale", "/api/locale", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "ru"})
		r.Header.Set("Accept-Language", "fa")
	})
	assert.Equal(t, "ru", decode[map[string]any](t, w)["locale"])

	assert.Equal(t, []string{"fa:header", "ru:override"}, rec.resolutions)
}

func TestHandleRootAndPage(t *testing.T) {
	rec := &resolutionRecorder{}
	h := NewPageHandlers(testDeps(t, rec))

	w := serve(h.HandleRoot, "GET /{$}", "/?lang=fa")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/fa", w.Header().Get("Location"))

	w = serve(h.HandleRoot, "GET /{$}", "/")
	assert.Equal(t, "/en", w.Header().Get("Location"))
	assert.Equal(t, []string{"fa:override", "en:default"}, rec.resolutions)

	w = serve(h.HandlePage, "GET /{locale}/docs/{slug...}", "/fa/docs/panel/setup")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[page.View](t, w)
	assert.Equal(t, i18n.Locale("fa"), view.Locale)
	assert.Equal(t, i18n.RTL, view.Direction)
	assert.True(t, view.Record.Fallback)
	assert.Equal(t, "Install the panel", view.Summary)
	require.Len(t, view.TOC, 1)
	assert.Equal(t, "install", view.TOC[0].Anchor)

	w = serve(h.HandlePage, "GET /{locale}", "/fa")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "خانه", decode[page.View](t, w).Record.Title)

	w = serve(h.HandlePage, "GET /{locale}", "/xx")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMonitoring(t *testing.T) {
	h := NewMonitoringHandlers(testDeps(t, nil))

	w := serve(h.HandleHealthCheck, "GET /healthz", "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, 3, health["locales"])
	assert.EqualValues(t, 2, health["documents"])

	w = serve(h.HandleCoverage, "GET /api/coverage", "/api/coverage")
	require.Equal(t, http.StatusOK, w.Code)
	cov := decode[map[string]any](t, w)
	assert.EqualValues(t, 3, cov["missing"], "fa misses setup, ru misses both")
}

func TestCoverageWithoutAuditor(t *testing.T) {
	deps := testDeps(t, nil)
	deps.Auditor = nil
	w := serve(NewMonitoringHandlers(deps).HandleCoverage, "GET /api/coverage", "/api/coverage")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"a"`, `"a"`))
	assert.True(t, etagMatches(`W/"a"`, `"a"`))
	assert.True(t, etagMatches(`*`, `"a"`))
	assert.True(t, etagMatches(`"b", "a"`, `"a"`))
	assert.False(t, etagMatches(`"b"`, `"a"`))
	assert.False(t, etagMatches("", `"a"`))
}
