package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hbnb_web/internal/domain"
)

// ViewService assembles the read models behind the places list and place
// detail pages. Responses are cached briefly so filter changes in local mode
// can reuse the last fetch instead of hitting the backend again.
type ViewService struct {
	backend  domain.BackendClient
	cache    domain.Cache
	cacheTTL time.Duration
	mode     domain.FilterMode
}

func NewViewService(b domain.BackendClient, c domain.Cache, ttl time.Duration, mode domain.FilterMode) *ViewService {
	if mode != domain.FilterRefetch {
		mode = domain.FilterLocal
	}
	return &ViewService{backend: b, cache: c, cacheTTL: ttl, mode: mode}
}

func (s *ViewService) FilterMode() domain.FilterMode { return s.mode }

const placesKey = "places"

func placeKey(id string) string { return fmt.Sprintf("place:%s", id) }

// ListPlaces is the page-load fetch. It populates the collection cache that
// local-mode filtering reads from.
func (s *ViewService) ListPlaces(ctx context.Context, token string) ([]domain.Place, error) {
	var cached []domain.Place
	if ok, _ := s.cache.Get(ctx, placesKey, &cached); ok {
		return cached, nil
	}
	raw, err := s.backend.ListPlaces(ctx, token)
	if err != nil {
		return nil, err
	}
	places := MapPlaces(raw)
	_ = s.cache.Set(ctx, placesKey, places, int(s.cacheTTL.Seconds()))
	return places, nil
}

// PlacesForFilter returns the set a filter change operates on. In local mode
// that is the already-fetched collection (no new backend call when the cache
// holds it); in refetch mode every filter change goes back to the backend.
func (s *ViewService) PlacesForFilter(ctx context.Context, token string) ([]domain.Place, error) {
	if s.mode == domain.FilterLocal {
		return s.ListPlaces(ctx, token)
	}
	raw, err := s.backend.ListPlaces(ctx, token)
	if err != nil {
		return nil, err
	}
	places := MapPlaces(raw)
	_ = s.cache.Set(ctx, placesKey, places, int(s.cacheTTL.Seconds()))
	return places, nil
}

// GetPlace fetches one place. When the detail payload carries no embedded
// reviews the legacy nested reviews route is tried best-effort; a backend
// without it just yields an empty list.
func (s *ViewService) GetPlace(ctx context.Context, token, id string) (domain.Place, error) {
	key := placeKey(id)
	var cached domain.Place
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	raw, err := s.backend.GetPlace(ctx, token, id)
	if err != nil {
		return domain.Place{}, err
	}
	pl := MapPlace(raw)

	if pl.Reviews == nil {
		if revs, rerr := s.backend.ListReviews(ctx, token, id); rerr == nil {
			pl.Reviews = MapReviews(revs)
		} else if !errors.Is(rerr, domain.ErrNotFound) && !errors.Is(rerr, domain.ErrUnauthorized) {
			return domain.Place{}, rerr
		}
	}

	_ = s.cache.Set(ctx, key, pl, int(s.cacheTTL.Seconds()))
	return pl, nil
}
