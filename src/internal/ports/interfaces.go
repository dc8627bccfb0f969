package ports

import (
	"context"
	"net/http"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// CatalogAPI is the remote movie catalog/account API. token is sent as a
// bearer credential and may be empty. GetProfileByEmail returns a nil
// profile without error when the API has no data for the email.
type CatalogAPI interface {
	GetProfileByEmail(ctx context.Context, token, email string) (*domain.ProfileRecord, error)
	GetMovie(ctx context.Context, id int) (*domain.MovieDetail, error)
	GetRecommendations(ctx context.Context, id int) ([]domain.MovieRef, error)
}

// TokenVerifier decodes a session token into claims. Implementations that
// check signatures return domain.ErrTokenInvalid on failure.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}

// SessionStore is the client-held session state. Load returns
// domain.ErrNoSession when nothing is stored.
type SessionStore interface {
	Load(r *http.Request) (*domain.Session, error)
	Save(w http.ResponseWriter, r *http.Request, s domain.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// SessionRepository keeps session state server-side, keyed by an opaque id.
// Get returns domain.ErrNoSession for unknown ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, id string, s domain.Session) error
	Delete(ctx context.Context, id string) error
}
