package domain

import "strconv"

// CreditRole tells cast and crew apart when rendering.
type CreditRole string

const (
	RoleCast CreditRole = "cast"
	RoleCrew CreditRole = "crew"
)

// CreditID is either a real person id or a synthetic placeholder.
type CreditID struct {
	Person    int
	Synthetic string
}

func PersonCreditID(id int) CreditID {
	return CreditID{Person: id}
}

func (c CreditID) IsSynthetic() bool {
	return c.Synthetic != ""
}

func (c CreditID) String() string {
	if c.Synthetic != "" {
		return c.Synthetic
	}
	return strconv.Itoa(c.Person)
}

// AggregatedCredit holds every job and character of one person on a work.
type AggregatedCredit struct {
	ID         CreditID
	Name       string
	Jobs       []string
	Characters []string
	// Unknown marks the entry built from records without a person id.
	Unknown bool
}

// DisplayName renders the placeholder label for the unknown person.
func (a AggregatedCredit) DisplayName(role CreditRole) string {
	if !a.Unknown {
		return a.Name
	}
	if role == RoleCrew {
		return "Unknown Crew"
	}
	return "Unknown Actor"
}
