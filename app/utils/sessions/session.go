package sessions

import (
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/cristobal/app/models"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "cristobal-session"

	userSessionKey = "user"
	cartSessionKey = "cart"
	langSessionKey = "lang"

	sessionMaxAge = 7 * 24 * time.Hour
)

func init() {
	gob.Register(models.SessionUser{})
	gob.Register([]models.CartItem{})
}

type SessionStore interface {
	GetUser(r *http.Request) *models.SessionUser
	SetUser(w http.ResponseWriter, r *http.Request, user models.SessionUser) error

	GetCart(r *http.Request) []models.CartItem
	SetCart(w http.ResponseWriter, r *http.Request, cart []models.CartItem) error

	GetLang(r *http.Request) string
	SetLang(w http.ResponseWriter, r *http.Request, lang string) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession never returns nil: an undecodable cookie (rotated keys, tampering)
// yields a fresh session.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("CookieSessionStore: discarding unreadable session cookie: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetUser(r *http.Request) *models.SessionUser {
	user, ok := c.getSession(r).Values[userSessionKey].(models.SessionUser)
	if !ok || user.ID == 0 {
		return nil
	}
	return &user
}

func (c *CookieSessionStore) SetUser(w http.ResponseWriter, r *http.Request, user models.SessionUser) error {
	session := c.getSession(r)
	session.Values[userSessionKey] = user
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetCart(r *http.Request) []models.CartItem {
	cart, ok := c.getSession(r).Values[cartSessionKey].([]models.CartItem)
	if !ok {
		return []models.CartItem{}
	}
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	return out
}

func (c *CookieSessionStore) SetCart(w http.ResponseWriter, r *http.Request, cart []models.CartItem) error {
	session := c.getSession(r)
	if len(cart) == 0 {
		delete(session.Values, cartSessionKey)
	} else {
		stored := make([]models.CartItem, len(cart))
		copy(stored, cart)
		session.Values[cartSessionKey] = stored
	}
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetLang(r *http.Request) string {
	lang, _ := c.getSession(r).Values[langSessionKey].(string)
	return lang
}

func (c *CookieSessionStore) SetLang(w http.ResponseWriter, r *http.Request, lang string) error {
	session := c.getSession(r)
	session.Values[langSessionKey] = lang
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
