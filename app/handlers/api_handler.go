package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/utils/locale"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

type APIHandler struct {
	render     *render.Render
	localesDir string
}

func NewAPIHandler(r *render.Render, localesDir string) *APIHandler {
	return &APIHandler{
		render:     r,
		localesDir: localesDir,
	}
}

// Translations returns locales/<lang>.json for the session language, or {}.
func (h *APIHandler) Translations(w http.ResponseWriter, r *http.Request) {
	translations, err := locale.LoadTranslations(h.localesDir, helpers.Lang(r))
	if err != nil {
		log.Printf("APIHandler.Translations: %v", err)
		translations = map[string]interface{}{}
	}
	_ = h.render.JSON(w, http.StatusOK, translations)
}

// Me reports the session user (or null) and language. The CSRF token rides
// along for scripts that post JSON.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	if token := csrf.Token(r); token != "" {
		w.Header().Set("X-CSRF-Token", token)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"user":      helpers.CurrentUser(r),
		"lang":      helpers.Lang(r),
		"cartCount": helpers.CartCount(r),
		"csrfToken": csrf.Token(r),
	})
}
