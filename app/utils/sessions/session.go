package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "catalog-admin-session"

	roleSessionKey     = "role"
	openedAtSessionKey = "openedAt"

	RoleAdmin = "admin"
)

type SessionStore interface {
	GetRole(r *http.Request) string
	IsAdmin(r *http.Request) bool
	OpenedAt(r *http.Request) time.Time
	SetAdmin(w http.ResponseWriter, r *http.Request) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

// NewCookieSessionStore signs cookies with the first key and encrypts with the second.
func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(12 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

// getSession always returns a usable session; a cookie that fails to decode yields a fresh one.
func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("Error getting session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetRole(r *http.Request) string {
	role, ok := c.getSession(r).Values[roleSessionKey].(string)
	if !ok {
		return ""
	}
	return role
}

func (c *CookieSessionStore) IsAdmin(r *http.Request) bool {
	return c.GetRole(r) == RoleAdmin
}

func (c *CookieSessionStore) OpenedAt(r *http.Request) time.Time {
	unix, ok := c.getSession(r).Values[openedAtSessionKey].(int64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}

func (c *CookieSessionStore) SetAdmin(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values[roleSessionKey] = RoleAdmin
	session.Values[openedAtSessionKey] = time.Now().Unix()
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
