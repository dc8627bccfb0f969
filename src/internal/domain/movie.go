package domain

import "time"

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SpokenLanguage struct {
	ISO6391 string `json:"iso_639_1"`
	Name    string `json:"name"`
}

type ProductionCompany struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreditRecord is one (person, role) pairing. The same person shows up once
// per job or character.
type CreditRecord struct {
	PersonID  *int    `json:"id"`
	Name      string  `json:"name"`
	Job       *string `json:"job"`
	Character *string `json:"character"`
}

type Credits struct {
	Cast []CreditRecord `json:"cast"`
	Crew []CreditRecord `json:"crew"`
}

// MovieDetail is the payload of GET /movies/movie/{id}. Credits is nil when the
// upstream response carries no credits object.
type MovieDetail struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	OriginalTitle       string              `json:"original_title"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"`
	VoteAverage         float64             `json:"vote_average"`
	PosterPath          string              `json:"poster_path"`
	Tagline             string              `json:"tagline"`
	Overview            string              `json:"overview"`
	Genres              []Genre             `json:"genres"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Credits             *Credits            `json:"credits"`
}

// Cast returns the cast records, nil when credits are absent.
func (m *MovieDetail) Cast() []CreditRecord {
	if m == nil || m.Credits == nil {
		return nil
	}
	return m.Credits.Cast
}

// Crew returns the crew records, nil when credits are absent.
func (m *MovieDetail) Crew() []CreditRecord {
	if m == nil || m.Credits == nil {
		return nil
	}
	return m.Credits.Crew
}

// ReleaseYear returns 0 when the release date is missing or malformed.
func (m *MovieDetail) ReleaseYear() int {
	date, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0
	}
	return date.Year()
}

func (m *MovieDetail) PosterURL() string {
	return PosterURL(m.PosterPath)
}

func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return posterBaseURL + path
}
