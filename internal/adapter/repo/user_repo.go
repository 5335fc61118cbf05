package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundraiser/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository using PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, `
SELECT id, username, password_hash, role, batch_id, created_at, updated_at
FROM users
WHERE username = $1;
`, username)
}

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `
SELECT id, username, password_hash, role, batch_id, created_at, updated_at
FROM users
WHERE id = $1;
`, id)
}

func (r *UserRepositoryPG) get(ctx context.Context, query, arg string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.BatchID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
