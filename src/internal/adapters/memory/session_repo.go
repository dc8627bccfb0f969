package memory

import (
	"context"
	"sync"

	"github.com/cinefront/cinefront/src/internal/domain"
)

type InMemorySessionRepo struct {
	sessions map[string]domain.Session
	mu       sync.RWMutex
}

func NewSessionRepo() *InMemorySessionRepo {
	return &InMemorySessionRepo{
		sessions: make(map[string]domain.Session),
	}
}

func (r *InMemorySessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &s, nil
}

func (r *InMemorySessionRepo) Save(ctx context.Context, id string, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = s
	return nil
}

func (r *InMemorySessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
