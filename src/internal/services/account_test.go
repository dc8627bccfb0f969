package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefront/cinefront/src/internal/domain"
)

func sampleProfile() *domain.ProfileRecord {
	return &domain.ProfileRecord{
		Email: "viewer@example.com",
		UserData: domain.UserData{
			WatchList: []domain.MovieRef{{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25", PosterPath: "/alien.jpg"}},
			Watched:   []domain.MovieRef{{ID: 2, OriginalTitle: "Solaris"}, {ID: 3, Title: "Heat"}},
		},
	}
}

func newAccountService(catalog *mockCatalog, verifier *mockVerifier) *AccountService {
	guard := NewSessionGuard(verifier, catalog, nil, slog.Default()).WithClock(fixedClock)
	return NewAccountService(guard, slog.Default())
}

func TestParseSection(t *testing.T) {
	assert.Equal(t, SectionWatchList, ParseSection("Watch List"))
	assert.Equal(t, SectionWatched, ParseSection("Watched"))
	assert.Equal(t, SectionLiked, ParseSection("Liked"))
	assert.Equal(t, SectionProfile, ParseSection(""))
	assert.Equal(t, SectionProfile, ParseSection("watchList"))
}

func TestAccountService_Profile(t *testing.T) {
	svc := newAccountService(
		&mockCatalog{profile: sampleProfile()},
		&mockVerifier{claims: &domain.Claims{Email: "viewer@example.com"}},
	)

	page, err := svc.Load(context.Background(), validSession(), SectionProfile)

	require.NoError(t, err)
	assert.Equal(t, StateReady, page.State)
	assert.Equal(t, "viewer@example.com", page.Email)
	assert.Equal(t, []ListCount{
		{Section: SectionWatchList, Count: 1},
		{Section: SectionWatched, Count: 2},
		{Section: SectionLiked, Count: 0},
	}, page.Counts)
	assert.Empty(t, page.List)
}

func TestAccountService_List(t *testing.T) {
	svc := newAccountService(
		&mockCatalog{profile: sampleProfile()},
		&mockVerifier{claims: &domain.Claims{Email: "viewer@example.com"}},
	)

	page, err := svc.Load(context.Background(), validSession(), SectionWatched)

	require.NoError(t, err)
	assert.Equal(t, domain.ListWatched, page.ListName)
	require.Len(t, page.List, 2)
	assert.Equal(t, "Solaris", page.List[0].Title)
	assert.Equal(t, "/movies/2", page.List[0].Href)
	assert.Equal(t, "Heat", page.List[1].Title)
}

func TestAccountService_FetchFailureIsErrorState(t *testing.T) {
	svc := newAccountService(
		&mockCatalog{profileErr: errors.New("timeout")},
		&mockVerifier{claims: &domain.Claims{Email: "viewer@example.com"}},
	)

	page, err := svc.Load(context.Background(), validSession(), SectionProfile)

	require.NoError(t, err)
	assert.Equal(t, StateError, page.State)
	assert.ErrorIs(t, page.Err, domain.ErrFetchFailed)
}

func TestAccountService_MismatchReturnsError(t *testing.T) {
	svc := newAccountService(
		&mockCatalog{profile: sampleProfile()},
		&mockVerifier{claims: &domain.Claims{Email: "intruder@example.com"}},
	)

	page, err := svc.Load(context.Background(), validSession(), SectionWatchList)

	assert.ErrorIs(t, err, domain.ErrIdentityMismatch)
	assert.Empty(t, page.List)
	assert.Empty(t, page.Email)
}

func TestAccountService_NoDataIsEmptyState(t *testing.T) {
	svc := newAccountService(
		&mockCatalog{},
		&mockVerifier{claims: &domain.Claims{Email: "viewer@example.com"}},
	)

	page, err := svc.Load(context.Background(), validSession(), SectionLiked)

	require.NoError(t, err)
	assert.Equal(t, StateEmpty, page.State)
	assert.Empty(t, page.Email)
	assert.Empty(t, page.List)
}
