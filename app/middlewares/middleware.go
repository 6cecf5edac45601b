package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/cristobal/app/helpers"
	"github.com/Rakhulsr/cristobal/app/utils/locale"
	"github.com/Rakhulsr/cristobal/app/utils/sessions"
	"github.com/gorilla/csrf"
)

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s -> %d (%dB) in %s", r.Method, r.URL.RequestURI(), rec.status, rec.size, time.Since(start).Round(time.Microsecond))
	})
}

// LanguageMiddleware stores a valid ?lang= in the session and puts the
// effective language on the request context.
func LanguageMiddleware(store sessions.SessionStore, defaultLang string) func(http.Handler) http.Handler {
	fallback := locale.Normalize(defaultLang)
	if fallback == "" {
		fallback = locale.Turkish
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := locale.Normalize(store.GetLang(r))

			if requested := locale.Normalize(r.URL.Query().Get("lang")); requested != "" {
				lang = requested
				if err := store.SetLang(w, r, lang); err != nil {
					log.Printf("LanguageMiddleware: failed to persist lang %q: %v", lang, err)
				}
			}
			if lang == "" {
				lang = fallback
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithLang(r.Context(), lang)))
		})
	}
}

// SessionUserMiddleware loads the logged-in user and the cart size from the
// session cookie into the request context.
func SessionUserMiddleware(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if user := store.GetUser(r); user != nil {
				ctx = helpers.WithUser(ctx, user)
			}

			count := 0
			for _, line := range store.GetCart(r) {
				count += line.Quantity
			}
			ctx = helpers.WithCartCount(ctx, count)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFMiddleware wraps gorilla/csrf; unsafe methods need the token in the
// X-CSRF-Token header or the _csrf form field.
func CSRFMiddleware(authKey []byte, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.FieldName("_csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("CSRFMiddleware: rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			w.Header().Set("Content-Type", "application/json; charset=UTF-8")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Geçersiz CSRF token."}`))
		})),
	)

	return protect
}
