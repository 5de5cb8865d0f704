package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/jmoiron/sqlx"
)

const inviteColumns = `id, email, role, token, expires_at, used, created_by, created_at`

type inviteRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

type InviteRepository struct {
	db *sqlx.DB
}

var _ interfaces.IInviteRepository = (*InviteRepository)(nil)

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, inv entities.Invite) (entities.Invite, error) {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO invites (`+inviteColumns+`)
		VALUES (:id, :email, :role, :token, :expires_at, :used, :created_by, :created_at)`, toInviteRow(inv))
	if err != nil {
		return entities.Invite{}, fmt.Errorf("insert invite: %w", err)
	}
	return inv, nil
}

func (r *InviteRepository) GetByToken(ctx context.Context, token string) (entities.Invite, error) {
	return r.getOne(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token = $1`, token)
}

func (r *InviteRepository) FindActiveByEmail(ctx context.Context, email string, now time.Time) (entities.Invite, error) {
	return r.getOne(ctx, `SELECT `+inviteColumns+` FROM invites
		WHERE email = $1 AND NOT used AND expires_at > $2
		ORDER BY created_at DESC LIMIT 1`, email, now)
}

// Redeem marks the invite used and binds the user in one transaction.
func (r *InviteRepository) Redeem(ctx context.Context, inviteID string, user entities.User) (entities.User, error) {
	var bound entities.User
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE invites SET used = TRUE WHERE id = $1 AND NOT used`, inviteID)
		if err != nil {
			return fmt.Errorf("mark invite %s used: %w", inviteID, err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return interfaces.ErrConditionFailed
		}
		bound, err = upsertUser(ctx, tx, user)
		return err
	})
	if err != nil {
		return entities.User{}, err
	}
	return bound, nil
}

func (r *InviteRepository) getOne(ctx context.Context, query string, args ...any) (entities.Invite, error) {
	var row inviteRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Invite{}, nil
		}
		return entities.Invite{}, fmt.Errorf("get invite: %w", err)
	}
	return entities.Invite{
		ID:        row.ID,
		Email:     row.Email,
		Role:      entities.Role(row.Role),
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt.UTC(),
		Used:      row.Used,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func toInviteRow(i entities.Invite) inviteRow {
	return inviteRow{
		ID:        i.ID,
		Email:     i.Email,
		Role:      string(i.Role),
		Token:     i.Token,
		ExpiresAt: i.ExpiresAt,
		Used:      i.Used,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}
