package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// AccountSection is one tab of the account page.
type AccountSection string

const (
	SectionProfile   AccountSection = "Profile"
	SectionWatchList AccountSection = "Watch List"
	SectionWatched   AccountSection = "Watched"
	SectionLiked     AccountSection = "Liked"
)

var AccountSections = []AccountSection{SectionProfile, SectionWatchList, SectionWatched, SectionLiked}

var sectionLists = map[AccountSection]string{
	SectionWatchList: domain.ListWatchList,
	SectionWatched:   domain.ListWatched,
	SectionLiked:     domain.ListLiked,
}

// ParseSection maps a query value to a section, defaulting to Profile.
func ParseSection(v string) AccountSection {
	s := AccountSection(v)
	if _, ok := sectionLists[s]; ok {
		return s
	}
	return SectionProfile
}

type ListCount struct {
	Section AccountSection
	Count   int
}

type AccountPage struct {
	State    ViewState
	Err      error
	Section  AccountSection
	Sections []AccountSection
	Email    string
	Counts   []ListCount
	ListName string
	List     []MovieCard
}

type AccountService struct {
	guard  *SessionGuard
	logger *slog.Logger
}

func NewAccountService(g *SessionGuard, l *slog.Logger) *AccountService {
	return &AccountService{guard: g, logger: l}
}

// Load activates the account view. A fetch failure yields an error state
// page and a profile-less answer an empty page; any other guard failure is
// returned so the caller can redirect.
func (s *AccountService) Load(ctx context.Context, sess *domain.Session, section AccountSection) (AccountPage, error) {
	page := AccountPage{Section: section, Sections: AccountSections}

	profile, err := s.guard.Activate(ctx, sess)
	if err != nil {
		if errors.Is(err, domain.ErrFetchFailed) {
			page.State = StateError
			page.Err = err
			return page, nil
		}
		return AccountPage{}, err
	}

	if profile == nil {
		page.State = StateEmpty
		return page, nil
	}

	page.State = StateReady
	page.Email = profile.Email
	for _, sec := range AccountSections[1:] {
		list, _ := profile.UserData.List(sectionLists[sec])
		page.Counts = append(page.Counts, ListCount{Section: sec, Count: len(list)})
	}

	if name, ok := sectionLists[section]; ok {
		list, _ := profile.UserData.List(name)
		page.ListName = name
		page.List = newMovieCards(list)
	}

	s.logger.DebugContext(ctx, "account view rendered", "section", string(section))
	return page, nil
}
