package interfaces

import (
	"context"
	"repairdesk/internal/domain/entities"
)

// IUserRepository is the source of truth for identity to role bindings.
// GetByID returns an empty User when the identity is unknown.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
	ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error)
	Upsert(ctx context.Context, u entities.User) (entities.User, error)
}
