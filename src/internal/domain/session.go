package domain

import "time"

// Storage keys of the client-held session state.
const (
	KeyToken      = "jwtToken"
	KeyExpiration = "expiration"
	KeyEmail      = "email"
)

// Session is the client-held proof of identity plus its expiry. It is
// created at login and only read by the views.
type Session struct {
	Token     string
	ExpiresAt int64 // epoch seconds
	HasExpiry bool
	Email     string
}

// Expiry returns the expiration as a time.Time, zero when unknown.
func (s Session) Expiry() time.Time {
	if !s.HasExpiry {
		return time.Time{}
	}
	return time.Unix(s.ExpiresAt, 0)
}

// Claims is the subset of token claims the frontend relies on.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}
