package memory

import (
	"context"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"sync"
	"time"
)

// InviteStore redeems invites into users, so it holds the user store.
type InviteStore struct {
	mu      sync.Mutex
	invites map[string]entities.Invite
	users   *UserStore
}

var _ interfaces.IInviteRepository = (*InviteStore)(nil)

func NewInviteStore(users *UserStore) *InviteStore {
	return &InviteStore{invites: make(map[string]entities.Invite), users: users}
}

func (s *InviteStore) Create(_ context.Context, inv entities.Invite) (entities.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invites[inv.ID]; ok {
		return entities.Invite{}, errDuplicateID
	}
	s.invites[inv.ID] = inv
	return inv, nil
}

func (s *InviteStore) GetByToken(_ context.Context, token string) (entities.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invites {
		if inv.Token == token {
			return inv, nil
		}
	}
	return entities.Invite{}, nil
}

func (s *InviteStore) FindActiveByEmail(_ context.Context, email string, now time.Time) (entities.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invites {
		if inv.Email == email && inv.Active(now) {
			return inv, nil
		}
	}
	return entities.Invite{}, nil
}

// Redeem holds the invite lock across the user write; the invite is only
// marked used once the user is stored.
func (s *InviteStore) Redeem(ctx context.Context, inviteID string, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invites[inviteID]
	if !ok || inv.Used {
		return entities.User{}, interfaces.ErrConditionFailed
	}
	bound, err := s.users.Upsert(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	inv.Used = true
	s.invites[inviteID] = inv
	return bound, nil
}
