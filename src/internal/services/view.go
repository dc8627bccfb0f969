package services

import (
	"strconv"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// ViewState is the lifecycle of a rendered view. The zero value is loading.
type ViewState int

const (
	StateLoading ViewState = iota
	StateError
	StateReady
	StateEmpty
)

func (s ViewState) String() string {
	switch s {
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	default:
		return "loading"
	}
}

// MovieCard is one entry of a movie list (account lists, recommendations).
type MovieCard struct {
	ID        int
	Title     string
	Year      string
	PosterURL string
	Href      string
}

func newMovieCard(m domain.MovieRef) MovieCard {
	year := ""
	if len(m.ReleaseDate) >= 4 {
		year = m.ReleaseDate[:4]
	}
	return MovieCard{
		ID:        m.ID,
		Title:     m.DisplayTitle(),
		Year:      year,
		PosterURL: domain.PosterURL(m.PosterPath),
		Href:      "/movies/" + strconv.Itoa(m.ID),
	}
}

func newMovieCards(refs []domain.MovieRef) []MovieCard {
	cards := make([]MovieCard, 0, len(refs))
	for _, r := range refs {
		cards = append(cards, newMovieCard(r))
	}
	return cards
}
