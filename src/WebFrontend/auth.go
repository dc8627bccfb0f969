package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/cinefront/cinefront/src/internal/config"
	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/ports"
)

const stateCookie = "cinefront_oauth_state"

// AuthService is the login entry point. When OIDC is configured it runs the
// authorization code flow and stores the resulting ID token as the session.
type AuthService struct {
	Provider *oidc.Provider
	Config   oauth2.Config
	Enabled  bool

	store     ports.SessionStore
	loginPath string
	secure    bool
	logger    *slog.Logger
}

func NewAuthService(ctx context.Context, cfg config.OIDCConfig, store ports.SessionStore, loginPath string, secure bool, logger *slog.Logger) *AuthService {
	s := &AuthService{store: store, loginPath: loginPath, secure: secure, logger: logger}

	if cfg.ProviderURL == "" {
		logger.Info("OIDC_PROVIDER not set, frontend login disabled")
		return s
	}

	provider, err := oidc.NewProvider(ctx, cfg.ProviderURL)
	if err != nil {
		logger.Error("failed to init OIDC provider", "provider", cfg.ProviderURL, "error", err)
		return s
	}

	s.Provider = provider
	s.Config = oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	s.Enabled = true
	return s
}

func (s *AuthService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.Enabled {
		http.Redirect(w, r, s.loginPath, http.StatusFound)
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.Config.AuthCodeURL(state), http.StatusFound)
}

func (s *AuthService) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.Enabled {
		http.Error(w, "Auth disabled", http.StatusBadRequest)
		return
	}

	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || r.URL.Query().Get("state") != state.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/auth", MaxAge: -1})

	oauth2Token, err := s.Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "token exchange failed", "error", err)
		http.Error(w, "Failed to exchange token", http.StatusBadGateway)
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token in token response", http.StatusBadGateway)
		return
	}
	verifier := s.Provider.Verifier(&oidc.Config{ClientID: s.Config.ClientID})
	idToken, err := verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		s.logger.WarnContext(r.Context(), "ID token verification failed", "error", err)
		http.Error(w, "Invalid ID token", http.StatusUnauthorized)
		return
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		http.Error(w, "ID token carries no email", http.StatusUnauthorized)
		return
	}

	sess := domain.Session{
		Token:     rawIDToken,
		ExpiresAt: idToken.Expiry.Unix(),
		HasExpiry: true,
		Email:     claims.Email,
	}
	if err := s.store.Save(w, r, sess); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to store session", "error", err)
		http.Error(w, "Failed to store session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/account", http.StatusFound)
}

func (s *AuthService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(w, r); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to clear session", "error", err)
	}
	http.Redirect(w, r, s.loginPath, http.StatusFound)
}
