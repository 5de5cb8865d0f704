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

type userRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT id, email, name, role, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.User{}, nil
		}
		return entities.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return row.toEntity(), nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	var rows []userRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, email, name, role, created_at FROM users WHERE role = $1 ORDER BY id`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role %s: %w", role, err)
	}
	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

// Upsert keeps the original created_at of an existing user.
func (r *UserRepository) Upsert(ctx context.Context, u entities.User) (entities.User, error) {
	return upsertUser(ctx, r.db, u)
}

func upsertUser(ctx context.Context, q sqlx.QueryerContext, u entities.User) (entities.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	var row userRow
	err := sqlx.GetContext(ctx, q, &row, `INSERT INTO users (id, email, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING id, email, name, role, created_at`,
		u.ID, u.Email, u.Name, string(u.Role), u.CreatedAt)
	if err != nil {
		return entities.User{}, fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	return row.toEntity(), nil
}

func (row userRow) toEntity() entities.User {
	return entities.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      entities.Role(row.Role),
		CreatedAt: row.CreatedAt.UTC(),
	}
}
