package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/metrics"
	"github.com/cinefront/cinefront/src/internal/ports"
)

// SessionEndedNotice is shown on the login page after a forced logout.
const SessionEndedNotice = "Session has ended. Please login to continue."

type SessionCheck struct {
	Expired bool
}

// CheckSession reports whether the stored expiration has been reached.
func CheckSession(expirationEpochSeconds int64, now func() time.Time) SessionCheck {
	return SessionCheck{Expired: !now().Before(time.Unix(expirationEpochSeconds, 0))}
}

// SessionGuard decides whether a stored session may populate a view.
type SessionGuard struct {
	verifier ports.TokenVerifier
	catalog  ports.CatalogAPI
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewSessionGuard(v ports.TokenVerifier, c ports.CatalogAPI, m *metrics.Metrics, l *slog.Logger) *SessionGuard {
	return &SessionGuard{
		verifier: v,
		catalog:  c,
		now:      time.Now,
		metrics:  m,
		logger:   l,
	}
}

// WithClock replaces the time source, used by tests.
func (g *SessionGuard) WithClock(now func() time.Time) *SessionGuard {
	g.now = now
	return g
}

// ValidateIdentity verifies the token and compares its email claim with the
// email of the freshly fetched profile. The comparison is exact.
func (g *SessionGuard) ValidateIdentity(ctx context.Context, token, fetchedEmail string) (bool, error) {
	claims, err := g.verify(ctx, token)
	if err != nil {
		return false, err
	}
	return claims.Email == fetchedEmail, nil
}

func (g *SessionGuard) verify(ctx context.Context, token string) (*domain.Claims, error) {
	claims, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims, nil
}

// Activate runs the guard for one page activation. The expiry check and the
// token verification happen before any fetch. On failure the error is one of
// domain.ErrNoSession, ErrSessionExpired, ErrTokenInvalid, ErrIdentityMismatch
// or ErrFetchFailed and the caller must not render fetched data. A nil
// profile with a nil error means the catalog holds no data for the session.
func (g *SessionGuard) Activate(ctx context.Context, s *domain.Session) (*domain.ProfileRecord, error) {
	if s == nil || s.Token == "" {
		g.metrics.GuardOutcome("no_session")
		return nil, domain.ErrNoSession
	}

	if !s.HasExpiry || CheckSession(s.ExpiresAt, g.now).Expired {
		g.metrics.GuardOutcome("expired")
		g.logger.InfoContext(ctx, "session expired", "email", s.Email, "expires_at", s.ExpiresAt)
		return nil, domain.ErrSessionExpired
	}

	claims, err := g.verify(ctx, s.Token)
	if err == nil && claims.Email == "" {
		err = fmt.Errorf("%w: no email claim", domain.ErrTokenInvalid)
	}
	if err != nil {
		g.metrics.GuardOutcome("token_invalid")
		g.logger.WarnContext(ctx, "session token rejected", "error", err)
		return nil, err
	}

	profile, err := g.catalog.GetProfileByEmail(ctx, s.Token, s.Email)
	if err != nil {
		g.metrics.GuardOutcome("fetch_failed")
		g.logger.ErrorContext(ctx, "profile fetch failed", "email", s.Email, "error", err)
		if errors.Is(err, domain.ErrFetchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	// An empty profile can only be matched against the email it was
	// requested for.
	want := s.Email
	if profile != nil {
		want = profile.Email
	}
	if claims.Email != want {
		g.metrics.GuardOutcome("identity_mismatch")
		g.logger.WarnContext(ctx, "token identity does not match profile", "email", s.Email)
		return nil, domain.ErrIdentityMismatch
	}
	if profile == nil {
		g.metrics.GuardOutcome("no_data")
		return nil, nil
	}

	g.metrics.GuardOutcome("accepted")
	return profile, nil
}
