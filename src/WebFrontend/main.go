package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinefront/cinefront/src/internal/adapters/catalog"
	"github.com/cinefront/cinefront/src/internal/adapters/memory"
	"github.com/cinefront/cinefront/src/internal/adapters/postgres"
	"github.com/cinefront/cinefront/src/internal/adapters/sessionstore"
	"github.com/cinefront/cinefront/src/internal/adapters/token"
	"github.com/cinefront/cinefront/src/internal/config"
	"github.com/cinefront/cinefront/src/internal/logger"
	"github.com/cinefront/cinefront/src/internal/metrics"
	"github.com/cinefront/cinefront/src/internal/ports"
	"github.com/cinefront/cinefront/src/internal/services"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML or JSON config file")
	flag.Parse()

	log := logger.Init()
	log.Info("Starting cinefront Web Frontend...")

	cfg, err := config.LoadWebFrontend(*configPath)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("web frontend stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.WebFrontendConfig, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store, err := newSessionStore(cfg, log)
	if err != nil {
		return err
	}

	verifier, err := newTokenVerifier(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("token verification configured", "mode", cfg.TokenVerification)

	api := catalog.NewClient(cfg.APIBaseURL, cfg.FetchTimeout, m)
	guard := services.NewSessionGuard(verifier, api, m, log)
	accounts := services.NewAccountService(guard, log)
	movies := services.NewMovieService(api, cfg.RecommendationsLimit, log)
	auth := NewAuthService(ctx, cfg.OIDC, store, cfg.LoginPath, cfg.SecureCookies, log)

	frontend, err := NewFrontend(store, accounts, movies, auth, cfg.LoginPath, log)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	mux := http.NewServeMux()
	frontend.RegisterHandlers(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Web Frontend listening", "addr", "http://0.0.0.0:"+cfg.Port, "api", cfg.APIBaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newSessionStore(cfg *config.WebFrontendConfig, log *slog.Logger) (ports.SessionStore, error) {
	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		repo := postgres.NewSessionRepo(db)
		if err := repo.InitSchema(); err != nil {
			return nil, fmt.Errorf("init session schema: %w", err)
		}
		log.Info("session state kept in postgres")
		return sessionstore.NewServerStore(repo, cfg.SecureCookies), nil
	case config.StoreMemory:
		log.Info("session state kept in memory")
		return sessionstore.NewServerStore(memory.NewSessionRepo(), cfg.SecureCookies), nil
	default:
		return sessionstore.NewCookieStore(cfg.SecureCookies), nil
	}
}

func newTokenVerifier(ctx context.Context, cfg *config.WebFrontendConfig) (ports.TokenVerifier, error) {
	switch cfg.TokenVerification {
	case config.VerifyOIDC:
		return token.NewOIDCVerifierFromProvider(ctx, cfg.OIDC.ProviderURL, cfg.OIDC.ClientID)
	case config.VerifyHMAC:
		return token.NewHMACVerifier(token.HMACConfig{
			Secret:   cfg.TokenSecret,
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			Leeway:   cfg.TokenLeeway,
		})
	default:
		return token.NewUnverifiedDecoder(), nil
	}
}
