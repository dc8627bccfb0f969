package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// sessionClaims are the claims carried by the catalog's session token.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (c *sessionClaims) toDomain() *domain.Claims {
	out := &domain.Claims{Subject: c.Subject, Email: c.Email}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

// UnverifiedDecoder reads claims without checking the signature. Trust comes
// from the token having been stored at login.
type UnverifiedDecoder struct {
	parser *jwt.Parser
}

func NewUnverifiedDecoder() *UnverifiedDecoder {
	return &UnverifiedDecoder{parser: jwt.NewParser()}
}

func (d *UnverifiedDecoder) Verify(_ context.Context, raw string) (*domain.Claims, error) {
	var claims sessionClaims
	if _, _, err := d.parser.ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims.toDomain(), nil
}

// HMACConfig configures HS256 verification. Empty Issuer or Audience skips
// that check.
type HMACConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// HMACVerifier checks HS256 signatures and expiry before exposing claims.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewHMACVerifier(cfg HMACConfig) (*HMACVerifier, error) {
	if cfg.Secret == "" {
		return nil, errors.New("hmac token verification requires a secret")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &HMACVerifier{secret: []byte(cfg.Secret), parser: jwt.NewParser(opts...)}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (*domain.Claims, error) {
	var claims sessionClaims
	_, err := v.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims.toDomain(), nil
}
