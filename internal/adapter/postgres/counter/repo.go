// Package counter implements the demo counter repository.
package counter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
)

// Repo provides counter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new counter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Increment appends one counter row.
func (r *Repo) Increment(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `INSERT INTO counters (count, created_at) VALUES (1, now())`); err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	return nil
}

// Clear removes all counter rows.
func (r *Repo) Clear(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `TRUNCATE counters`); err != nil {
		return fmt.Errorf("clear counter: %w", err)
	}
	return nil
}

// Count returns the number of counter rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM counters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count counter: %w", err)
	}
	return n, nil
}
