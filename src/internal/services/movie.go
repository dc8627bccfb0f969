package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/ports"
)

const DefaultRecommendationsLimit = 20

// CreditLine is one rendered cast or crew entry.
type CreditLine struct {
	Key   string
	Name  string
	Roles string
}

type MoviePage struct {
	State ViewState
	Err   error

	ID        int
	Title     string
	Year      int
	Runtime   int
	Vote      string
	PosterURL string
	Tagline   string
	Overview  string

	Genres    []string
	Languages []string
	Companies []string

	Cast []CreditLine
	Crew []CreditLine

	Recommendations    []MovieCard
	RecommendationsErr error
}

type MovieService struct {
	catalog  ports.CatalogAPI
	recLimit int
	logger   *slog.Logger
}

func NewMovieService(c ports.CatalogAPI, recLimit int, l *slog.Logger) *MovieService {
	if recLimit <= 0 {
		recLimit = DefaultRecommendationsLimit
	}
	return &MovieService{catalog: c, recLimit: recLimit, logger: l}
}

// Load fetches the movie and its recommendations concurrently. A movie fetch
// failure yields an error state page; a recommendations failure only marks
// that section.
func (s *MovieService) Load(ctx context.Context, id int) MoviePage {
	var (
		movie   *domain.MovieDetail
		recs    []domain.MovieRef
		recsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.catalog.GetMovie(gctx, id)
		if err != nil {
			return err
		}
		movie = m
		return nil
	})
	g.Go(func() error {
		recs, recsErr = s.catalog.GetRecommendations(gctx, id)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "movie fetch failed", "movie_id", id, "error", err)
		return MoviePage{State: StateError, Err: err, ID: id}
	}
	if recsErr != nil {
		s.logger.WarnContext(ctx, "recommendations fetch failed", "movie_id", id, "error", recsErr)
	}

	page := buildMoviePage(movie)
	if recsErr != nil {
		page.RecommendationsErr = recsErr
	} else {
		if len(recs) > s.recLimit {
			recs = recs[:s.recLimit]
		}
		page.Recommendations = newMovieCards(recs)
	}

	s.logger.InfoContext(ctx, "data fetched", "movie_id", movie.ID, "title", movie.OriginalTitle)
	return page
}

func buildMoviePage(m *domain.MovieDetail) MoviePage {
	page := MoviePage{
		State:     StateReady,
		ID:        m.ID,
		Title:     m.OriginalTitle,
		Year:      m.ReleaseYear(),
		Runtime:   m.Runtime,
		Vote:      fmt.Sprintf("%.1f/10", m.VoteAverage),
		PosterURL: m.PosterURL(),
		Tagline:   m.Tagline,
		Overview:  m.Overview,
	}
	if page.Title == "" {
		page.Title = m.Title
	}

	for _, g := range m.Genres {
		page.Genres = append(page.Genres, g.Name)
	}
	for _, l := range m.SpokenLanguages {
		page.Languages = append(page.Languages, l.Name)
	}
	for _, c := range m.ProductionCompanies {
		page.Companies = append(page.Companies, c.Name)
	}

	page.Cast = creditLines(AggregateCredits(m.Cast()), domain.RoleCast)
	page.Crew = creditLines(AggregateCredits(m.Crew()), domain.RoleCrew)
	return page
}

func creditLines(credits CreditMap, role domain.CreditRole) []CreditLine {
	lines := make([]CreditLine, 0, credits.Len())
	for _, c := range credits.Values() {
		roles := c.Characters
		if role == domain.RoleCrew {
			roles = c.Jobs
		}
		lines = append(lines, CreditLine{
			Key:   string(role) + "_" + c.ID.String(),
			Name:  c.DisplayName(role),
			Roles: strings.Join(roles, ", "),
		})
	}
	return lines
}

// ParseMovieID accepts positive integer ids only.
func ParseMovieID(v string) (int, error) {
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id %q", domain.ErrNotFound, v)
	}
	return id, nil
}
