// Package user implements the User repository using PostgreSQL.
// Users are keyed by the externally-issued open id.
package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const userColumns = `open_id, nickname, icon, rank, created_at, updated_at`

const getUserSQL = `
SELECT ` + userColumns + `
FROM users
WHERE open_id = $1`

const createUserSQL = `
INSERT INTO users (open_id, nickname, icon, rank, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING ` + userColumns

const incrementRankSQL = `
UPDATE users
SET rank = rank + $2, updated_at = now()
WHERE open_id = $1
RETURNING rank`

const topByRankSQL = `
SELECT ` + userColumns + `
FROM users
ORDER BY rank DESC
LIMIT $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByOpenID returns a user by open id.
func (r *Repo) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserSQL, openID))
	if err != nil {
		return nil, postgres.MapError(err, "user", openID)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted row.
// Returns domain.ErrAlreadyExists when the open id is taken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanUser(q.QueryRow(ctx, createUserSQL, u.OpenID, u.Nickname, u.Icon, u.Rank))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.OpenID)
	}
	return created, nil
}

// IncrementRank atomically adds delta to the user's rank and returns the new
// value. Returns domain.ErrNotFound for an unknown open id.
func (r *Repo) IncrementRank(ctx context.Context, openID string, delta int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rank int
	if err := q.QueryRow(ctx, incrementRankSQL, openID, delta).Scan(&rank); err != nil {
		return 0, postgres.MapError(err, "user", openID)
	}
	return rank, nil
}

// TopByRank returns up to limit users ordered by rank descending.
// Ties order by storage's native stability; no further tie-break.
func (r *Repo) TopByRank(ctx context.Context, limit int) ([]*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, topByRankSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("top by rank: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("top by rank: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.OpenID, &u.Nickname, &u.Icon, &u.Rank, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
