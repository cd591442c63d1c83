package handlers

import (
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
)

// LocaleCookie holds an explicit locale choice made by the reader.
const LocaleCookie = "locale"

// APIHandlers serve the JSON document API.
type APIHandlers struct {
	deps         Deps
	errorAdapter *errors.HTTPErrorAdapter
}

func NewAPIHandlers(deps Deps) *APIHandlers {
	deps = deps.withDefaults()
	return &APIHandlers{deps: deps, errorAdapter: errors.NewHTTPErrorAdapter(deps.Logger)}
}

// HandleContent returns the record for ?slug=a/b&locale=fa. The slug
// parameter is required; "/" addresses the root index. Unknown locales fall
// back to the default. Existing documents carry an ETag and honor
// If-None-Match.
func (h *APIHandlers) HandleContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("slug")
	if raw == "" {
		err := errors.ValidationError("Slug is required").
			WithContext("param", "slug").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	slug := content.ParseSlug(raw)
	if !slug.Valid() {
		err := errors.ValidationError("invalid slug").
			WithContext("slug", raw).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	locale := h.deps.Registry.Normalize(i18n.Locale(q.Get("locale")))
	rec := h.deps.Source.Load(r.Context(), slug, locale)

	w.Header().Set("Content-Language", string(rec.Locale))
	if rec.Fingerprint != "" {
		etag := `"` + rec.Fingerprint + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	if err := writeJSONPretty(w, r, http.StatusOK, rec); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write content response").Build())
	}
}

// HandleTree returns the navigation tree for the {locale} path value.
func (h *APIHandlers) HandleTree(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.pathLocale(w, r)
	if !ok {
		return
	}
	tree := content.Tree(r.Context(), h.deps.Store, h.deps.Source, h.deps.Registry, locale)
	if err := writeJSONPretty(w, r, http.StatusOK, tree); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write tree response").Build())
	}
}

// HandleTranslations returns the UI string bundle for the {locale} path value.
func (h *APIHandlers) HandleTranslations(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.pathLocale(w, r)
	if !ok {
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, h.deps.Translations.Load(locale)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write translations response").Build())
	}
}

// HandleLocale reports which locale the request resolves to and why.
func (h *APIHandlers) HandleLocale(w http.ResponseWriter, r *http.Request) {
	reg := h.deps.Registry
	locale, source := reg.ResolveWithSource(preference(r))
	h.deps.Recorder.IncLocaleResolution(string(locale), string(source))

	resp := responses.LocaleResponse{
		Locale:    locale,
		Direction: reg.Direction(locale),
		Source:    source,
	}
	for _, l := range reg.Supported() {
		resp.Supported = append(resp.Supported, responses.LocaleInfo{
			Code:      l,
			Name:      reg.DisplayName(l),
			Direction: reg.Direction(l),
			Default:   l == reg.Default(),
		})
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write locale response").Build())
	}
}

func (h *APIHandlers) pathLocale(w http.ResponseWriter, r *http.Request) (i18n.Locale, bool) {
	raw := r.PathValue("locale")
	locale, ok := h.deps.Registry.Lookup(raw)
	if !ok {
		err := errors.LocaleError("unsupported locale").
			WithContext("locale", raw).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
	return locale, ok
}
