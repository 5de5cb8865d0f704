package usecase

import (
	"context"
	"log/slog"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"strings"
)

// IRoleAuthority resolves an authenticated identity to its stored role.
// It fails closed: unknown identities and unknown roles are unauthenticated.
type IRoleAuthority interface {
	RoleOf(ctx context.Context, identityID string) (entities.Role, error)
	Identity(ctx context.Context, identityID string) (entities.User, error)
}

type RoleAuthority struct {
	users interfaces.IUserRepository
}

var _ IRoleAuthority = (*RoleAuthority)(nil)

func NewRoleAuthority(users interfaces.IUserRepository) *RoleAuthority {
	return &RoleAuthority{users: users}
}

func (a *RoleAuthority) RoleOf(ctx context.Context, identityID string) (entities.Role, error) {
	u, err := a.Identity(ctx, identityID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (a *RoleAuthority) Identity(ctx context.Context, identityID string) (entities.User, error) {
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return entities.User{}, ErrUnauthenticated
	}
	u, err := a.users.GetByID(ctx, identityID)
	if err != nil {
		return entities.User{}, storageFailure(err)
	}
	if u.ID == "" {
		return entities.User{}, ErrUnauthenticated
	}
	if !u.Role.Valid() {
		slog.WarnContext(ctx, "[role][usecase] stored role is not recognised", "identity", identityID, "role", string(u.Role))
		return entities.User{}, ErrUnauthenticated
	}
	return u, nil
}
