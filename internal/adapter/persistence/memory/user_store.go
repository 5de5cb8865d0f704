package memory

import (
	"context"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"sort"
	"sync"
	"time"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]entities.User
}

var _ interfaces.IUserRepository = (*UserStore)(nil)

// NewUserStore seeds the store with users, typically the bootstrap admin.
func NewUserStore(seed ...entities.User) *UserStore {
	s := &UserStore{users: make(map[string]entities.User, len(seed))}
	for _, u := range seed {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) GetByID(_ context.Context, id string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *UserStore) ListByRole(_ context.Context, role entities.Role) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.User, 0)
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *UserStore) Upsert(_ context.Context, u entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.ID]; ok && !existing.CreatedAt.IsZero() {
		u.CreatedAt = existing.CreatedAt
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = u
	return u, nil
}
