package domain

import "context"

// BackendClient is the outbound port to the Breaking Bad BnB REST API.
// Payloads come back as decoded JSON; field aliasing and shape fallbacks are
// resolved by the mappers in internal/app, not at call sites.
type BackendClient interface {
	// Login exchanges credentials for the raw login payload
	// (expected to carry access_token).
	Login(ctx context.Context, email, password string) (map[string]any, error)

	// ListPlaces fetches the places collection. token may be empty:
	// anonymous browsing is permitted.
	ListPlaces(ctx context.Context, token string) ([]map[string]any, error)

	// GetPlace fetches one place with owner, amenities and reviews.
	GetPlace(ctx context.Context, token, id string) (map[string]any, error)

	// ListReviews fetches reviews via the legacy nested route.
	ListReviews(ctx context.Context, token, id string) ([]map[string]any, error)

	// SubmitReview posts a review. Requires a token.
	SubmitReview(ctx context.Context, token, placeID, text string, rating int) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// FilterMode selects how the price filter behaves. The two profiles come
// from two divergent field implementations and are deliberately kept apart.
type FilterMode string

const (
	// FilterLocal filters the already-fetched set without a new backend call.
	FilterLocal FilterMode = "local"
	// FilterRefetch re-fetches the collection on every filter change, then
	// filters client-side.
	FilterRefetch FilterMode = "refetch"
)

// PriceFilter is a max-price threshold; All passes everything.
type PriceFilter struct {
	Max float64
	All bool
}

// Allows reports whether a place's price passes the filter. Places without
// a price are treated as zero, so they always pass.
func (f PriceFilter) Allows(p Place) bool {
	if f.All {
		return true
	}
	var price float64
	if p.Price != nil {
		price = *p.Price
	}
	return price <= f.Max
}
