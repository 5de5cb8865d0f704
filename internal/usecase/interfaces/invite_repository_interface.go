package interfaces

import (
	"context"
	"repairdesk/internal/domain/entities"
	"time"
)

// IInviteRepository persists invites.
//
// Redeem marks the invite used and binds user to its role as one atomic
// write. It fails with ErrConditionFailed, and writes nothing, when the
// invite was already used.
type IInviteRepository interface {
	Create(ctx context.Context, inv entities.Invite) (entities.Invite, error)
	GetByToken(ctx context.Context, token string) (entities.Invite, error)
	FindActiveByEmail(ctx context.Context, email string, now time.Time) (entities.Invite, error)
	Redeem(ctx context.Context, inviteID string, user entities.User) (entities.User, error)
}
