package services

import (
	"context"
	"sync"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// mockVerifier implements ports.TokenVerifier for testing.
type mockVerifier struct {
	claims *domain.Claims
	err    error
	called bool
}

func (m *mockVerifier) Verify(_ context.Context, _ string) (*domain.Claims, error) {
	m.called = true
	return m.claims, m.err
}

// mockCatalog implements ports.CatalogAPI for testing.
type mockCatalog struct {
	mu sync.Mutex

	profile    *domain.ProfileRecord
	profileErr error
	movie      *domain.MovieDetail
	movieErr   error
	recs       []domain.MovieRef
	recsErr    error

	profileCalls int
	lastToken    string
	lastEmail    string
}

func (m *mockCatalog) GetProfileByEmail(_ context.Context, token, email string) (*domain.ProfileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileCalls++
	m.lastToken = token
	m.lastEmail = email
	return m.profile, m.profileErr
}

func (m *mockCatalog) GetMovie(_ context.Context, _ int) (*domain.MovieDetail, error) {
	return m.movie, m.movieErr
}

func (m *mockCatalog) GetRecommendations(_ context.Context, _ int) ([]domain.MovieRef, error) {
	return m.recs, m.recsErr
}
