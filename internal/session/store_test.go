package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"hbnb_web/internal/session"
)

func replay(t *testing.T, rec *httptest.ResponseRecorder, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieStore_SetGetClear(t *testing.T) {
	st := session.NewCookieStore()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localhost/login", nil)
	require.NoError(t, st.Set(rec, req, "tok123", time.Hour))

	next := replay(t, rec, "http://localhost/")
	got, err := st.Get(next)
	require.NoError(t, err)
	require.Equal(t, "tok123", got)

	rec2 := httptest.NewRecorder()
	require.NoError(t, st.Clear(rec2, next))
	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, session.CookieName, cleared[0].Name)
	require.True(t, cleared[0].MaxAge < 0)

	anon := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	got, err = st.Get(anon)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCookieStore_Attributes(t *testing.T) {
	st := session.NewCookieStore()

	// loopback host: no Secure flag
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://127.0.0.1:8080/login", nil)
	require.NoError(t, st.Set(rec, req, "tok123", time.Hour))
	c := rec.Result().Cookies()[0]
	require.False(t, c.Secure)
	require.Equal(t, "/", c.Path)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.False(t, c.HttpOnly)
	require.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, time.Minute)

	// public host: Secure set
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "https://bnb.example.com/login", nil)
	require.NoError(t, st.Set(rec2, req2, "tok123", time.Hour))
	require.True(t, rec2.Result().Cookies()[0].Secure)
}

func TestCookieStore_TTLBoundedByJWTExp(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	st := session.NewCookieStore()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localhost/login", nil)
	require.NoError(t, st.Set(rec, req, tok, time.Hour))

	c := rec.Result().Cookies()[0]
	require.WithinDuration(t, exp, c.Expires, time.Minute)
}

func TestRedisStore_SetGetClear(t *testing.T) {
	mr := miniredis.RunT(t)
	st := session.NewRedisStore(mr.Addr(), "", 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localhost/login", nil)
	require.NoError(t, st.Set(rec, req, "tok123", time.Hour))

	// the store hands the browser a session id cookie on first set
	next := replay(t, rec, "http://localhost/")
	got, err := st.Get(next)
	require.NoError(t, err)
	require.Equal(t, "tok123", got)

	rec2 := httptest.NewRecorder()
	require.NoError(t, st.Clear(rec2, next))
	got, err = st.Get(next)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRedisStore_AnonymousBrowser(t *testing.T) {
	mr := miniredis.RunT(t)
	st := session.NewRedisStore(mr.Addr(), "", 0)

	req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	got, err := st.Get(req)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRedisStore_TokenExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	st := session.NewRedisStore(mr.Addr(), "", 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "http://localhost/login", nil)
	require.NoError(t, st.Set(rec, req, "tok123", time.Second))

	next := replay(t, rec, "http://localhost/")
	mr.FastForward(2 * time.Second)

	got, err := st.Get(next)
	require.NoError(t, err)
	require.Empty(t, got)
}
