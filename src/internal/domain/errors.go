package domain

import "errors"

// Session errors.
var (
	ErrNoSession        = errors.New("no session")
	ErrSessionExpired   = errors.New("session expired")
	ErrIdentityMismatch = errors.New("token identity does not match profile")
	ErrTokenInvalid     = errors.New("token could not be decoded or verified")
)

// Catalog API errors.
var (
	ErrFetchFailed    = errors.New("catalog fetch failed")
	ErrNotFound       = errors.New("not found")
	ErrUpstreamStatus = errors.New("unexpected upstream status")
)
