package domain

// List names used by the catalog API inside UserData.
const (
	ListWatchList = "watchList"
	ListWatched   = "watched"
	ListLiked     = "liked"
)

type MovieRef struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	PosterPath    string `json:"poster_path"`
	ReleaseDate   string `json:"release_date"`
}

// DisplayTitle prefers the localized title and falls back to the original one.
func (m MovieRef) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.OriginalTitle
}

type UserData struct {
	WatchList []MovieRef `json:"watchList"`
	Watched   []MovieRef `json:"watched"`
	Liked     []MovieRef `json:"liked"`
}

// List returns the movies stored under the given list name.
func (u UserData) List(name string) ([]MovieRef, bool) {
	switch name {
	case ListWatchList:
		return u.WatchList, true
	case ListWatched:
		return u.Watched, true
	case ListLiked:
		return u.Liked, true
	}
	return nil, false
}

// ProfileRecord is the account document returned by GET /users/email/{email}.
type ProfileRecord struct {
	Email    string   `json:"email"`
	UserData UserData `json:"userData"`
}
