package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/utils/locale"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// PageHandler serves the HTML shells; each page pulls its content from the
// JSON API in the browser.
type PageHandler struct {
	render       *render.Render
	sessionStore sessions.SessionStore
}

func NewPageHandler(r *render.Render, sessionStore sessions.SessionStore) *PageHandler {
	return &PageHandler{
		render:       r,
		sessionStore: sessionStore,
	}
}

// Page renders the named template with the shared page data. Route
// variables are passed through as Params.
func (h *PageHandler) Page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := helpers.GetBaseData(r, title, name)
		if vars := mux.Vars(r); len(vars) > 0 {
			data.Params = vars
		}
		if err := h.render.HTML(w, http.StatusOK, name, data); err != nil {
			log.Printf("PageHandler.Page: failed to render %s: %v", name, err)
		}
	}
}

// SetLang stores the language and sends the visitor back where they came
// from.
func (h *PageHandler) SetLang(w http.ResponseWriter, r *http.Request) {
	if lang := locale.Normalize(mux.Vars(r)["lang"]); lang != "" {
		if err := h.sessionStore.SetLang(w, r, lang); err != nil {
			log.Printf("PageHandler.SetLang: failed to store lang %q: %v", lang, err)
		}
	}
	http.Redirect(w, r, backURL(r), http.StatusFound)
}

// backURL returns the same-host Referer path, or "/".
func backURL(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/"
	}
	if u.Path == "" {
		return "/"
	}
	back := u.Path
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
