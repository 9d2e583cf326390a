package session

import (
	"net/http"
	"time"
)

// CookieStore keeps the token in the access_token cookie: path /,
// SameSite=Lax, explicit expiry, Secure unless the host is loopback. Not
// HTTP-only: the legacy contract has page scripts read the token to build
// the Authorization header.
type CookieStore struct{}

func NewCookieStore() *CookieStore { return &CookieStore{} }

func (s *CookieStore) Get(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil // absent cookie is just an anonymous browser
	}
	return c.Value, nil
}

func (s *CookieStore) Set(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	ttl = tokenTTL(token, ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   !isLocalHost(r.Host),
		HttpOnly: false,
	})
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isLocalHost(r.Host),
	})
	return nil
}
