package usecase

import (
	"context"
	"errors"
	"log/slog"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultInviteTTL = 7 * 24 * time.Hour

// Identity is what the identity provider vouches for. It carries no role.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// IInviteUseCase manages single-use role invites.
//
//   - admins may invite any role, semiadmins only technicians and viewers
//   - one active invite per email
//   - accepting binds the caller's identity to the invited role, and only
//     an identity without a role may accept
type IInviteUseCase interface {
	Create(ctx context.Context, actorID, email string, role entities.Role) (entities.Invite, error)
	Accept(ctx context.Context, who Identity, token string) (entities.User, error)
}

type InviteUseCase struct {
	roles   IRoleAuthority
	invites interfaces.IInviteRepository
	users   interfaces.IUserRepository
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

var _ IInviteUseCase = (*InviteUseCase)(nil)

func NewInviteUseCase(roles IRoleAuthority, invites interfaces.IInviteRepository, users interfaces.IUserRepository, ttl time.Duration) *InviteUseCase {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &InviteUseCase{
		roles:   roles,
		invites: invites,
		users:   users,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

func (u *InviteUseCase) Create(ctx context.Context, actorID, email string, role entities.Role) (entities.Invite, error) {
	inviter, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return entities.Invite{}, err
	}
	if inviter != entities.RoleAdmin && inviter != entities.RoleSemiAdmin {
		return entities.Invite{}, ErrForbidden
	}

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return entities.Invite{}, invalidPayload("a valid email is required")
	}
	if !role.Valid() {
		return entities.Invite{}, invalidPayload("unknown role %q", role)
	}
	if !canInvite(inviter, role) {
		return entities.Invite{}, ErrForbidden
	}

	now := u.now()
	existing, err := u.invites.FindActiveByEmail(ctx, email, now)
	if err != nil {
		return entities.Invite{}, storageFailure(err)
	}
	if existing.ID != "" {
		return entities.Invite{}, ErrInviteAlreadyExists
	}

	inv := entities.Invite{
		ID:        u.newID(),
		Email:     email,
		Role:      role,
		Token:     u.newID(),
		ExpiresAt: now.Add(u.ttl),
		CreatedBy: actorID,
		CreatedAt: now,
	}
	created, err := u.invites.Create(ctx, inv)
	if err != nil {
		return entities.Invite{}, storageFailure(err)
	}
	slog.InfoContext(ctx, "[invite][usecase] invite created", "invite_id", created.ID, "role", string(role), "actor", actorID)
	return created, nil
}

func (u *InviteUseCase) Accept(ctx context.Context, who Identity, token string) (entities.User, error) {
	who.ID = strings.TrimSpace(who.ID)
	if who.ID == "" {
		return entities.User{}, ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.User{}, invalidPayload("token is required")
	}

	inv, err := u.invites.GetByToken(ctx, token)
	if err != nil {
		return entities.User{}, storageFailure(err)
	}
	if inv.ID == "" {
		return entities.User{}, ErrInviteNotFound
	}
	if !inv.Active(u.now()) {
		return entities.User{}, ErrInviteNotActive
	}
	if normalizeEmail(who.Email) != inv.Email {
		return entities.User{}, ErrForbidden
	}

	existing, err := u.users.GetByID(ctx, who.ID)
	if err != nil {
		return entities.User{}, storageFailure(err)
	}
	if existing.Role.Valid() {
		return entities.User{}, ErrAlreadyMember
	}

	name := strings.TrimSpace(who.Name)
	if name == "" {
		name = inv.Email
	}
	user, err := u.invites.Redeem(ctx, inv.ID, entities.User{
		ID:        who.ID,
		Email:     inv.Email,
		Name:      name,
		Role:      inv.Role,
		CreatedAt: u.now(),
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.User{}, ErrInviteNotActive
		}
		return entities.User{}, storageFailure(err)
	}
	slog.InfoContext(ctx, "[invite][usecase] invite accepted", "invite_id", inv.ID, "user_id", user.ID, "role", string(user.Role))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
