// internal/adapters/hbnb/client.go
package hbnb

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hbnb_web/internal/adapters/observability"
	"hbnb_web/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API (tries the current contract first, falls back to the legacy variant) ----

func (c *Client) Login(ctx context.Context, email, password string) (map[string]any, error) {
	var out map[string]any
	body := map[string]any{"email": email, "password": password}
	err := c.do(ctx, "auth.login", http.MethodPost, c.base+"/auth/login", "", body, &out)
	return out, err
}

func (c *Client) ListPlaces(ctx context.Context, token string) ([]map[string]any, error) {
	candidates := []string{
		c.base + "/places/", // preferred
		c.base + "/places",  // legacy
	}
	var raw json.RawMessage
	if err := c.getFirst(ctx, "places.list", candidates, token, &raw); err != nil {
		return nil, err
	}
	return unwrapPlaces(raw)
}

func (c *Client) GetPlace(ctx context.Context, token, id string) (map[string]any, error) {
	var out map[string]any
	err := c.do(ctx, "places.get", http.MethodGet, fmt.Sprintf("%s/places/%s", c.base, id), token, nil, &out)
	return out, err
}

func (c *Client) ListReviews(ctx context.Context, token, id string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.do(ctx, "reviews.list", http.MethodGet, fmt.Sprintf("%s/places/%s/reviews", c.base, id), token, nil, &out)
	return out, err
}

// SubmitReview posts to the flat reviews endpoint; when the backend only
// exposes the legacy nested route it retries there, with the nested body
// shape (no place_id).
func (c *Client) SubmitReview(ctx context.Context, token, placeID, text string, rating int) error {
	err := c.do(ctx, "reviews.submit", http.MethodPost, c.base+"/reviews/", token,
		map[string]any{"place_id": placeID, "text": text, "rating": rating}, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return c.do(ctx, "reviews.submit", http.MethodPost, fmt.Sprintf("%s/places/%s/reviews", c.base, placeID), token,
		map[string]any{"text": text, "rating": rating}, nil)
}

// ---- Internals ----

// unwrapPlaces accepts either a bare array or an object wrapping a "places"
// field; anything else is an invalid format.
func unwrapPlaces(raw json.RawMessage) ([]map[string]any, error) {
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Places []map[string]any `json:"places"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Places != nil {
		return wrapped.Places, nil
	}
	return nil, fmt.Errorf("%w: places payload is neither array nor {places:[...]}", domain.ErrInvalidFormat)
}

func (c *Client) getFirst(ctx context.Context, op string, urls []string, token string, out any) error {
	var last error
	for _, u := range urls {
		if err := c.do(ctx, op, http.MethodGet, u, token, nil, out); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				last = err
				continue // try next pattern
			}
			return err // non-404: stop early
		}
		return nil // success
	}
	if last != nil {
		return last
	}
	return errors.New("no candidate URL succeeded")
}

// do performs one JSON request with client-side rate limiting and decodes
// into out (out may be nil for fire-and-forget writes). GETs retry on 429
// and transient 5xx, honoring Retry-After when provided; non-idempotent
// methods are never retried.
func (c *Client) do(ctx context.Context, op, method, url, token string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 4
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		// build a fresh request each attempt
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hbnb-web/1.0")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveBackend(op, 0, time.Since(start))
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		observability.ObserveBackend(op, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			if out == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
			}
			return nil

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return domain.ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w: remote %d", domain.ErrRequestFailed, resp.StatusCode)
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("%w: status %d: %s", domain.ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0                  // 0..1
	j := time.Duration(0.5 * f * float64(base)) // up to +50%
	return base + j
}
