package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundraiser/internal/domain"
)

// BatchRepositoryPG implements domain.BatchRepository using PostgreSQL.
type BatchRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewBatchRepository(pool *pgxpool.Pool) *BatchRepositoryPG {
	return &BatchRepositoryPG{pool: pool}
}

func (r *BatchRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, total_amount, created_at, updated_at
FROM batches
WHERE id = $1;
`, id)
	var b domain.Batch
	err := row.Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return &b, nil
}

// Leaderboard reads the denormalized totals; nothing is summed here.
func (r *BatchRepositoryPG) Leaderboard(ctx context.Context) ([]domain.Batch, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, total_amount, created_at, updated_at
FROM batches
ORDER BY total_amount DESC, name ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var items []domain.Batch
	for rows.Next() {
		var b domain.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.BatchRepository = (*BatchRepositoryPG)(nil)
