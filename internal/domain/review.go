package domain

import (
	"errors"
	"strings"
)

type Review struct {
	Text    string
	Rating  int // 1..5
	User    *Person
	RawJSON []byte
}

// ReviewDraft is what the user submits; validated before any network call.
type ReviewDraft struct {
	PlaceID string
	Text    string
	Rating  int
}

var ErrValidationFailed = errors.New("review validation failed")

// Validate rejects drafts that must never reach the network: empty text or
// a rating outside 1..5.
func (d ReviewDraft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return ErrValidationFailed
	}
	if d.Rating < 1 || d.Rating > 5 {
		return ErrValidationFailed
	}
	return nil
}
