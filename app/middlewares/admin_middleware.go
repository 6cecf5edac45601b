package middlewares

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/unrolled/render"
)

const loginPath = "/auth/login"

// RequireAuthAPI answers 401 JSON for anonymous callers of the JSON API.
func RequireAuthAPI(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if helpers.CurrentUser(r) == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Giriş yapmalısınız."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthPage redirects anonymous visitors to the login page.
func RequireAuthPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if helpers.CurrentUser(r) == nil {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := helpers.CurrentUser(r)
		if user == nil || !user.IsAdmin() {
			if user != nil {
				log.Printf("AdminOnly: user %d (%s) attempted to access %s without admin role", user.ID, user.Email, r.URL.Path)
			}
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
