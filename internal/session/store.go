// Package session holds the bearer token for one browser. Two variants
// exist, matching the two legacy front ends: a cookie named access_token and
// a persistent "token" key in Redis. Presence of a token is the only
// authentication signal the UI uses; liveness is the backend's problem.
package session

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the token cookie of the cookie variant.
	CookieName = "access_token"
	// DefaultTTL mirrors the legacy front end's one-hour cookie.
	DefaultTTL = time.Hour
)

// Store is the token store contract: Get returns the empty string for
// anonymous browsers, Set persists a freshly issued token, Clear logs the
// browser out.
type Store interface {
	Get(r *http.Request) (string, error)
	Set(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// isLocalHost reports whether the request host is a loopback name, in which
// case the Secure cookie attribute is dropped so plain-http dev setups work.
func isLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "localhost" || host == "127.0.0.1"
}

// tokenTTL sizes the store TTL from the token's own exp claim when the token
// is a JWT carrying one. The claim is read unverified; it only bounds how
// long we keep the token around, it grants nothing.
func tokenTTL(token string, fallback time.Duration) time.Duration {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	until := time.Until(exp.Time)
	if until <= 0 || until > fallback {
		return fallback
	}
	return until
}
