package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hbnb_web/internal/domain"
)

// AuthService handles the login exchange. Logout is purely a token-store
// concern and lives with the handlers.
type AuthService struct {
	backend domain.BackendClient
}

func NewAuthService(b domain.BackendClient) *AuthService {
	return &AuthService{backend: b}
}

// Login posts credentials and returns the bearer token. 401 surfaces as
// domain.ErrUnauthorized; a 2xx response without an access token is an
// invalid format, not a silent success.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, ok := ExtractToken(payload)
	if !ok {
		return "", fmt.Errorf("%w: no token received", domain.ErrInvalidFormat)
	}
	return token, nil
}

// ReviewService validates and submits reviews, and keeps the detail cache
// honest afterwards.
type ReviewService struct {
	backend domain.BackendClient
	cache   domain.Cache
}

func NewReviewService(b domain.BackendClient, c domain.Cache) *ReviewService {
	return &ReviewService{backend: b, cache: c}
}

// Submit enforces the local preconditions first: a validation failure never
// reaches the network, and a missing token is unauthorized without a call.
func (s *ReviewService) Submit(ctx context.Context, token string, draft domain.ReviewDraft) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	if err := s.backend.SubmitReview(ctx, token, draft.PlaceID, draft.Text, draft.Rating); err != nil {
		return err
	}

	// Evict so the follow-up detail fetch shows the new review.
	if s.cache != nil {
		if err := s.cache.Del(ctx, placeKey(draft.PlaceID)); err != nil {
			log.Warn().Err(err).Str("place_id", draft.PlaceID).Msg("evict place cache failed")
		}
		_ = s.cache.Del(ctx, placesKey)
	}
	return nil
}
