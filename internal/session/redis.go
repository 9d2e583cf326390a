package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hbnb_web/internal/adapters/observability"
)

// sidCookie identifies the browser so the Redis variant can scope its
// "token" key per browser context, the way localStorage scoped it per
// origin+browser.
const sidCookie = "hbnb_sid"

// RedisStore keeps the token under the persistent key "token:<sid>".
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(addr, pass string, db int) *RedisStore {
	return &RedisStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func tokenKey(sid string) string { return fmt.Sprintf("token:%s", sid) }

func (s *RedisStore) Get(r *http.Request) (string, error) {
	sid, ok := browserID(r)
	if !ok {
		return "", nil
	}
	v, err := s.c.Get(r.Context(), tokenKey(sid)).Result()
	if err == redis.Nil {
		observability.ObserveSession("miss")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	observability.ObserveSession("hit")
	return v, nil
}

func (s *RedisStore) Set(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	ttl = tokenTTL(token, ttl)

	sid, ok := browserID(r)
	if !ok {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
			Secure:   !isLocalHost(r.Host),
			HttpOnly: true,
		})
	}

	observability.ObserveSession("set")
	return s.c.Set(r.Context(), tokenKey(sid), token, ttl).Err()
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sid, ok := browserID(r)
	if !ok {
		return nil
	}
	observability.ObserveSession("clear")
	return s.c.Del(r.Context(), tokenKey(sid)).Err()
}

func browserID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sidCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
