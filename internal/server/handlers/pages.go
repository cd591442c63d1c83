package handlers

import (
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// PageHandlers serve the locale entry redirect and assembled page views.
type PageHandlers struct {
	deps         Deps
	errorAdapter *errors.HTTPErrorAdapter
}

func NewPageHandlers(deps Deps) *PageHandlers {
	deps = deps.withDefaults()
	return &PageHandlers{deps: deps, errorAdapter: errors.NewHTTPErrorAdapter(deps.Logger)}
}

// HandleRoot redirects "/" to the resolved locale's home page.
func (h *PageHandlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	locale, source := h.deps.Registry.ResolveWithSource(preference(r))
	h.deps.Recorder.IncLocaleResolution(string(locale), string(source))
	http.Redirect(w, r, "/"+string(locale), http.StatusTemporaryRedirect)
}

// HandlePage renders the view for /{locale} and /{locale}/docs/{slug...}.
// Missing documents still answer 200 with the not-found placeholder view.
func (h *PageHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("locale")
	locale, ok := h.deps.Registry.Lookup(raw)
	if !ok {
		err := errors.NotFoundError("unknown locale").
			WithContext("locale", raw).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	slug := content.ParseSlug(r.PathValue("slug"))
	if !slug.Valid() {
		err := errors.ValidationError("invalid slug").
			WithContext("slug", r.PathValue("slug")).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	view := h.deps.Pages.Build(r.Context(), slug, locale)
	w.Header().Set("Content-Language", string(view.Record.Locale))
	if err := writeJSONPretty(w, r, http.StatusOK, view); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write page response").Build())
	}
}
