package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hbnb_web/internal/app"
	"hbnb_web/internal/domain"
)

// ---- fakes ----

type fakeBackend struct {
	loginPayload map[string]any
	loginErr     error
	places       []map[string]any
	placesErr    error
	place        map[string]any
	placeErr     error
	reviews      []map[string]any
	reviewsErr   error
	submitErr    error

	listCalls   int
	submitCalls int
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (map[string]any, error) {
	return f.loginPayload, f.loginErr
}
func (f *fakeBackend) ListPlaces(ctx context.Context, token string) ([]map[string]any, error) {
	f.listCalls++
	return f.places, f.placesErr
}
func (f *fakeBackend) GetPlace(ctx context.Context, token, id string) (map[string]any, error) {
	return f.place, f.placeErr
}
func (f *fakeBackend) ListReviews(ctx context.Context, token, id string) ([]map[string]any, error) {
	return f.reviews, f.reviewsErr
}
func (f *fakeBackend) SubmitReview(ctx context.Context, token, placeID, text string, rating int) error {
	f.submitCalls++
	return f.submitErr
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Place:
		*d = v.([]domain.Place)
	case *domain.Place:
		*d = v.(domain.Place)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- view service ----

func TestListPlaces_CacheMissThenHit(t *testing.T) {
	b := &fakeBackend{places: []map[string]any{{"id": "p1", "name": "Lab Loft", "price": 80.0}}}
	cache := &fakeCache{}
	vs := app.NewViewService(b, cache, 10*time.Minute, domain.FilterLocal)

	got, err := vs.ListPlaces(context.Background(), "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Lab Loft" {
		t.Fatalf("unexpected places: %+v", got)
	}

	// Mutate backend to ensure the second read comes from cache
	b.places = []map[string]any{{"id": "p9", "name": "SHOULD NOT SEE THIS"}}

	got2, err := vs.ListPlaces(context.Background(), "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got2[0].Name != "Lab Loft" {
		t.Fatalf("expected cached place, got %+v", got2)
	}
	if b.listCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", b.listCalls)
	}
}

func TestPlacesForFilter_LocalReusesFetch(t *testing.T) {
	b := &fakeBackend{places: []map[string]any{{"id": "p1"}}}
	vs := app.NewViewService(b, &fakeCache{}, 10*time.Minute, domain.FilterLocal)

	if _, err := vs.ListPlaces(context.Background(), ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := vs.PlacesForFilter(context.Background(), ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.listCalls != 1 {
		t.Fatalf("local filtering must not re-fetch; got %d calls", b.listCalls)
	}
}

func TestPlacesForFilter_RefetchAlwaysFetches(t *testing.T) {
	b := &fakeBackend{places: []map[string]any{{"id": "p1"}}}
	vs := app.NewViewService(b, &fakeCache{}, 10*time.Minute, domain.FilterRefetch)

	if _, err := vs.ListPlaces(context.Background(), ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := vs.PlacesForFilter(context.Background(), ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.listCalls != 2 {
		t.Fatalf("refetch filtering must hit the backend again; got %d calls", b.listCalls)
	}
}

func TestGetPlace_LegacyReviewsFallback(t *testing.T) {
	b := &fakeBackend{
		place:   map[string]any{"id": "p1", "name": "Lab Loft"}, // no embedded reviews
		reviews: []map[string]any{{"text": "ok", "rating": 3.0}},
	}
	vs := app.NewViewService(b, &fakeCache{}, time.Minute, domain.FilterLocal)

	got, err := vs.GetPlace(context.Background(), "", "p1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got.Reviews) != 1 || got.Reviews[0].Rating != 3 {
		t.Fatalf("expected legacy reviews merged in, got %+v", got.Reviews)
	}
}

func TestGetPlace_NoLegacyRouteIsFine(t *testing.T) {
	b := &fakeBackend{
		place:      map[string]any{"id": "p1"},
		reviewsErr: domain.ErrNotFound,
	}
	vs := app.NewViewService(b, &fakeCache{}, time.Minute, domain.FilterLocal)

	got, err := vs.GetPlace(context.Background(), "", "p1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got.Reviews) != 0 {
		t.Fatalf("expected no reviews, got %+v", got.Reviews)
	}
}

// ---- auth service ----

func TestLogin_Success(t *testing.T) {
	a := app.NewAuthService(&fakeBackend{loginPayload: map[string]any{"access_token": "tok123"}})
	tok, err := a.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tok != "tok123" {
		t.Fatalf("token = %q", tok)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	a := app.NewAuthService(&fakeBackend{loginErr: domain.ErrUnauthorized})
	_, err := a.Login(context.Background(), "a@b.com", "bad")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	a := app.NewAuthService(&fakeBackend{loginPayload: map[string]any{"status": "ok"}})
	_, err := a.Login(context.Background(), "a@b.com", "x")
	if !errors.Is(err, domain.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

// ---- review service ----

func TestSubmit_EmptyTextNeverReachesNetwork(t *testing.T) {
	b := &fakeBackend{}
	rs := app.NewReviewService(b, &fakeCache{})

	err := rs.Submit(context.Background(), "tok123", domain.ReviewDraft{PlaceID: "p1", Text: "   ", Rating: 4})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if b.submitCalls != 0 {
		t.Fatalf("network call observed: %d", b.submitCalls)
	}
}

func TestSubmit_RatingOutOfRange(t *testing.T) {
	b := &fakeBackend{}
	rs := app.NewReviewService(b, &fakeCache{})

	err := rs.Submit(context.Background(), "tok123", domain.ReviewDraft{PlaceID: "p1", Text: "fine", Rating: 6})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if b.submitCalls != 0 {
		t.Fatalf("network call observed: %d", b.submitCalls)
	}
}

func TestSubmit_MissingToken(t *testing.T) {
	b := &fakeBackend{}
	rs := app.NewReviewService(b, &fakeCache{})

	err := rs.Submit(context.Background(), "", domain.ReviewDraft{PlaceID: "p1", Text: "fine", Rating: 4})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if b.submitCalls != 0 {
		t.Fatalf("network call observed: %d", b.submitCalls)
	}
}

func TestSubmit_EvictsStaleDetail(t *testing.T) {
	b := &fakeBackend{}
	cache := &fakeCache{store: map[string]any{"place:p1": domain.Place{ID: "p1"}}}
	rs := app.NewReviewService(b, cache)

	if err := rs.Submit(context.Background(), "tok123", domain.ReviewDraft{PlaceID: "p1", Text: "fine", Rating: 4}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.submitCalls != 1 {
		t.Fatalf("expected 1 submit, got %d", b.submitCalls)
	}
	if _, ok := cache.store["place:p1"]; ok {
		t.Fatal("detail cache not evicted")
	}
}
