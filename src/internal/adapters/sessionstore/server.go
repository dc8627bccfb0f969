package sessionstore

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/ports"
)

// SessionCookie carries the server-side session id.
const SessionCookie = "cinefront_sid"

// ServerStore keeps session state in a repository and only hands the
// browser an opaque id.
type ServerStore struct {
	repo   ports.SessionRepository
	secure bool
}

func NewServerStore(repo ports.SessionRepository, secure bool) *ServerStore {
	return &ServerStore{repo: repo, secure: secure}
}

func (s *ServerStore) Load(r *http.Request) (*domain.Session, error) {
	id, ok := sessionID(r)
	if !ok {
		return nil, domain.ErrNoSession
	}
	sess, err := s.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, err
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return sess, nil
}

func (s *ServerStore) Save(w http.ResponseWriter, r *http.Request, sess domain.Session) error {
	id, ok := sessionID(r)
	if !ok {
		id = uuid.NewString()
	}
	if err := s.repo.Save(r.Context(), id, sess); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *ServerStore) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
	})
	id, ok := sessionID(r)
	if !ok {
		return nil
	}
	if err := s.repo.Delete(r.Context(), id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
