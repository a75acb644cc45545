package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *CookieSessionStore {
	return NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
}

func withCookies(resp *http.Response) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestAdminSessionLifecycle(t *testing.T) {
	store := newStore()

	anonymous := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, store.IsAdmin(anonymous))
	assert.True(t, store.OpenedAt(anonymous).IsZero())

	w := httptest.NewRecorder()
	require.NoError(t, store.SetAdmin(w, httptest.NewRequest(http.MethodPost, "/", nil)))

	r := withCookies(w.Result())
	assert.True(t, store.IsAdmin(r))
	assert.Equal(t, RoleAdmin, store.GetRole(r))
	assert.False(t, store.OpenedAt(r).IsZero())

	cleared := httptest.NewRecorder()
	require.NoError(t, store.ClearSession(cleared, r))
	assert.False(t, store.IsAdmin(withCookies(cleared.Result())))
}

func TestForeignCookieIsNotAdmin(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, newStore().SetAdmin(w, httptest.NewRequest(http.MethodPost, "/", nil)))

	assert.False(t, newStore().IsAdmin(withCookies(w.Result())))
}
