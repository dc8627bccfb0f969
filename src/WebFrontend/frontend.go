package main

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/ports"
	"github.com/cinefront/cinefront/src/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// noticeSessionEnded is the query value the login page turns into the
// session-ended alert.
const noticeSessionEnded = "session_ended"

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
}

// Frontend serves the account and movie pages.
type Frontend struct {
	store     ports.SessionStore
	accounts  *services.AccountService
	movies    *services.MovieService
	auth      *AuthService
	loginPath string
	tmpl      *template.Template
	logger    *slog.Logger
}

func NewFrontend(store ports.SessionStore, accounts *services.AccountService, movies *services.MovieService, auth *AuthService, loginPath string, logger *slog.Logger) (*Frontend, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Frontend{
		store:     store,
		accounts:  accounts,
		movies:    movies,
		auth:      auth,
		loginPath: loginPath,
		tmpl:      tmpl,
		logger:    logger,
	}, nil
}

func (f *Frontend) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/account", http.StatusFound)
	})
	mux.HandleFunc("GET /account", f.handleAccount)
	mux.HandleFunc("GET /movies/{id}", f.handleMovie)
	mux.HandleFunc("GET "+f.loginPath, f.handleLoginPage)
	mux.HandleFunc("GET /auth/login", f.auth.HandleLogin)
	mux.HandleFunc("GET /auth/callback", f.auth.HandleCallback)
	mux.HandleFunc("GET /logout", f.auth.HandleLogout)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func (f *Frontend) handleAccount(w http.ResponseWriter, r *http.Request) {
	section := services.ParseSection(r.URL.Query().Get("view"))

	sess, err := f.store.Load(r)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		f.logger.ErrorContext(r.Context(), "failed to load session", "error", err)
		f.render(w, r, http.StatusInternalServerError, "account.html", services.AccountPage{
			State: services.StateError, Err: err, Section: section,
		})
		return
	}

	page, err := f.accounts.Load(r.Context(), sess, section)
	if err != nil {
		f.redirectToLogin(w, r, err)
		return
	}

	status := http.StatusOK
	if page.State == services.StateError {
		status = http.StatusBadGateway
	}
	f.render(w, r, status, "account.html", page)
}

// redirectToLogin applies the recovery of each guard failure: expiry clears
// the session and shows the notice, an invalid token clears silently, and a
// missing session or identity mismatch only redirects.
func (f *Frontend) redirectToLogin(w http.ResponseWriter, r *http.Request, err error) {
	target := f.loginPath
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		f.clearSession(w, r)
		target += "?" + url.Values{"notice": {noticeSessionEnded}}.Encode()
	case errors.Is(err, domain.ErrTokenInvalid):
		f.clearSession(w, r)
	}
	f.logger.InfoContext(r.Context(), "redirecting to login", "path", r.URL.Path, "reason", err.Error())
	http.Redirect(w, r, target, http.StatusFound)
}

func (f *Frontend) clearSession(w http.ResponseWriter, r *http.Request) {
	if err := f.store.Clear(w, r); err != nil {
		f.logger.ErrorContext(r.Context(), "failed to clear session", "error", err)
	}
}

func (f *Frontend) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, err := services.ParseMovieID(r.PathValue("id"))
	if err != nil {
		f.render(w, r, http.StatusNotFound, "movie.html", services.MoviePage{State: services.StateError, Err: err})
		return
	}

	page := f.movies.Load(r.Context(), id)

	status := http.StatusOK
	if page.State == services.StateError {
		status = http.StatusBadGateway
		if errors.Is(page.Err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
	}
	f.render(w, r, status, "movie.html", page)
}

type loginPage struct {
	Notice       string
	LoginEnabled bool
}

func (f *Frontend) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	page := loginPage{LoginEnabled: f.auth.Enabled}
	if r.URL.Query().Get("notice") == noticeSessionEnded {
		page.Notice = services.SessionEndedNotice
	}
	f.render(w, r, http.StatusOK, "login.html", page)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (f *Frontend) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := f.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		f.logger.ErrorContext(r.Context(), "error executing template", "template", name, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
