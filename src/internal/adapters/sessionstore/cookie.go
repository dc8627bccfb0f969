package sessionstore

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// CookieStore keeps the session state in the browser, one cookie per key.
type CookieStore struct {
	Secure bool
}

func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{Secure: secure}
}

func (s *CookieStore) Load(r *http.Request) (*domain.Session, error) {
	token, err := r.Cookie(domain.KeyToken)
	if err != nil || token.Value == "" {
		return nil, domain.ErrNoSession
	}

	sess := &domain.Session{Token: token.Value}
	if c, err := r.Cookie(domain.KeyEmail); err == nil {
		sess.Email = c.Value
	}
	if c, err := r.Cookie(domain.KeyExpiration); err == nil {
		if exp, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
			sess.ExpiresAt = exp
			sess.HasExpiry = true
		}
	}
	return sess, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, sess domain.Session) error {
	maxAge := 0
	if sess.HasExpiry {
		if left := time.Until(sess.Expiry()); left > 0 {
			maxAge = int(left.Seconds())
		}
	}
	s.set(w, domain.KeyToken, sess.Token, maxAge)
	s.set(w, domain.KeyEmail, sess.Email, maxAge)
	if sess.HasExpiry {
		s.set(w, domain.KeyExpiration, strconv.FormatInt(sess.ExpiresAt, 10), maxAge)
	}
	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) error {
	for _, key := range []string{domain.KeyToken, domain.KeyExpiration, domain.KeyEmail} {
		s.set(w, key, "", -1)
	}
	return nil
}

func (s *CookieStore) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
