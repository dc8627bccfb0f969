package services

import (
	"fmt"

	"github.com/cinefront/cinefront/src/internal/domain"
)

// UnknownPerson is the synthetic id of the entry collecting every credit
// record without a person id. The counter restarts at 1 on each call.
const UnknownPerson = "fakeid00000001"

// creditKey groups records while aggregating. All records without a person
// id share the missing key.
type creditKey struct {
	id      int
	missing bool
}

// CreditMap is an insertion-ordered mapping from person to aggregated credit.
type CreditMap struct {
	order []domain.CreditID
	byID  map[domain.CreditID]*domain.AggregatedCredit
}

func (m CreditMap) Len() int {
	return len(m.order)
}

func (m CreditMap) Get(id domain.CreditID) (domain.AggregatedCredit, bool) {
	c, ok := m.byID[id]
	if !ok {
		return domain.AggregatedCredit{}, false
	}
	return *c, true
}

// Values returns the aggregated credits in first-seen order.
func (m CreditMap) Values() []domain.AggregatedCredit {
	out := make([]domain.AggregatedCredit, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out
}

func syntheticID(n int) string {
	return fmt.Sprintf("fakeid%08d", n)
}

// AggregateCredits groups credit records by person id. Jobs and characters
// keep their input order and skip empty values. Entries without a real id
// get a synthetic id in a second pass; the counter is local to the call.
func AggregateCredits(credits []domain.CreditRecord) CreditMap {
	var keys []creditKey
	acc := make(map[creditKey]*domain.AggregatedCredit)

	for _, c := range credits {
		key := creditKey{missing: true}
		if c.PersonID != nil {
			key = creditKey{id: *c.PersonID}
		}

		entry, ok := acc[key]
		if !ok {
			entry = &domain.AggregatedCredit{
				Name:       c.Name,
				Jobs:       []string{},
				Characters: []string{},
			}
			if !key.missing {
				entry.ID = domain.PersonCreditID(key.id)
			}
			acc[key] = entry
			keys = append(keys, key)
		}

		if c.Job != nil && *c.Job != "" {
			entry.Jobs = append(entry.Jobs, *c.Job)
		}
		if c.Character != nil && *c.Character != "" {
			entry.Characters = append(entry.Characters, *c.Character)
		}
	}

	out := CreditMap{
		order: make([]domain.CreditID, 0, len(keys)),
		byID:  make(map[domain.CreditID]*domain.AggregatedCredit, len(keys)),
	}
	next := 1
	for _, key := range keys {
		entry := acc[key]
		if key.missing {
			entry.ID = domain.CreditID{Synthetic: syntheticID(next)}
			entry.Unknown = true
			next++
		}
		out.order = append(out.order, entry.ID)
		out.byID[entry.ID] = entry
	}
	return out
}
