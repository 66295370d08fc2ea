package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/paladar/pkg/cache"
)

type formState struct {
	Mode   string `json:"mode"`
	EditID uint   `json:"edit_id"`
}

func TestSessionSurvivesRequests(t *testing.T) {
	store := cache.NewMemory()
	mw := Middleware(store, DefaultOptions())

	write := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		require.NoError(t, sess.Set("form:users", formState{Mode: "editing", EditID: 3}))
		sess.Flash("error", "Nombre requerido")
		require.NoError(t, sess.Save(w))
	}))
	rec := httptest.NewRecorder()
	write.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "paladar_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	var got formState
	var flash, again string
	read := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		sess.Decode("form:users", &got)
		flash = sess.TakeFlash("error")
		again = sess.TakeFlash("error")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	read.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, formState{Mode: "editing", EditID: 3}, got)
	assert.Equal(t, "Nombre requerido", flash)
	assert.Empty(t, again)
}

func TestSaveWithoutChangesSetsNoCookie(t *testing.T) {
	h := Middleware(cache.NewMemory(), DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, FromCtx(r).Save(w))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Result().Cookies())
}

func TestUnknownCookieStartsEmpty(t *testing.T) {
	var has bool
	h := Middleware(cache.NewMemory(), DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		has = FromCtx(r).Has("form:users")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "paladar_session", Value: "stale"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, has)
}
