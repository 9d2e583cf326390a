package domain

import "errors"

// Failure taxonomy shared by every flow. Flows catch these at the call site
// and turn them into a single user-visible message; nothing propagates to a
// global handler.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid data format")
	ErrRequestFailed = errors.New("request failed")
)
