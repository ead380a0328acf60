// Package progress implements the per-user completion repository: the
// user_album_images markers and the user_albums aggregate flags. These two
// tables are owned by the completion path and are never deleted from.
package progress

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// Repo provides completion-marker persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const completionColumns = `user_open_id, album_image_id, completed, created_at, updated_at`

const getCompletionSQL = `
SELECT ` + completionColumns + `
FROM user_album_images
WHERE user_open_id = $1 AND album_image_id = $2`

const mostRecentCompletionSQL = `
SELECT ` + completionColumns + `
FROM user_album_images
WHERE user_open_id = $1 AND completed
ORDER BY created_at DESC, album_image_id DESC
LIMIT 1`

// markCompletedSQL flips a marker to completed. The WHERE on the conflict
// branch makes an already-completed row a no-op (0 rows affected), which is
// what keeps concurrent duplicate completions from double-counting.
const markCompletedSQL = `
INSERT INTO user_album_images (user_open_id, album_image_id, completed, created_at, updated_at)
VALUES ($1, $2, TRUE, now(), now())
ON CONFLICT (user_open_id, album_image_id)
DO UPDATE SET completed = TRUE, updated_at = now()
WHERE NOT user_album_images.completed`

const completedImageIDsSQL = `
SELECT uai.album_image_id
FROM user_album_images uai
JOIN album_images ai ON ai.id = uai.album_image_id
WHERE uai.user_open_id = $1 AND ai.parent_id = $2 AND uai.completed`

const countCompletedSQL = `
SELECT count(*)
FROM user_album_images uai
JOIN album_images ai ON ai.id = uai.album_image_id
WHERE uai.user_open_id = $1 AND ai.parent_id = $2 AND uai.completed`

const getUserAlbumSQL = `
SELECT user_open_id, album_id, completed, created_at, updated_at
FROM user_albums
WHERE user_open_id = $1 AND album_id = $2`

const setAlbumCompletedSQL = `
INSERT INTO user_albums (user_open_id, album_id, completed, created_at, updated_at)
VALUES ($1, $2, TRUE, now(), now())
ON CONFLICT (user_open_id, album_id)
DO UPDATE SET completed = TRUE, updated_at = now()`

// ---------------------------------------------------------------------------
// Completion markers
// ---------------------------------------------------------------------------

// GetCompletion returns the (user, image) marker.
// Returns domain.ErrNotFound when the pair has no record yet.
func (r *Repo) GetCompletion(ctx context.Context, openID string, imageID int64) (*domain.UserAlbumImage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCompletion(q.QueryRow(ctx, getCompletionSQL, openID, imageID))
	if err != nil {
		return nil, postgres.MapError(err, "user_album_image", imageID)
	}
	return c, nil
}

// MostRecentCompletion returns the user's latest completed marker by record
// creation order. Returns domain.ErrNotFound when the user has none.
func (r *Repo) MostRecentCompletion(ctx context.Context, openID string) (*domain.UserAlbumImage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCompletion(q.QueryRow(ctx, mostRecentCompletionSQL, openID))
	if err != nil {
		return nil, postgres.MapError(err, "user_album_image", openID)
	}
	return c, nil
}

// MarkCompleted upserts the (user, image) marker to completed and reports
// whether this call actually flipped it. A false return means the marker was
// already completed — the caller must not count it again.
func (r *Repo) MarkCompleted(ctx context.Context, openID string, imageID int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markCompletedSQL, openID, imageID)
	if err != nil {
		return false, postgres.MapError(err, "user_album_image", imageID)
	}
	return tag.RowsAffected() > 0, nil
}

// CompletedImageIDs returns the set of image ids in one album that the user
// has completed.
func (r *Repo) CompletedImageIDs(ctx context.Context, openID string, albumID int64) (map[int64]bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, completedImageIDsSQL, openID, albumID)
	if err != nil {
		return nil, fmt.Errorf("completed image ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("completed image ids: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CountCompleted returns how many images of one album the user has completed.
func (r *Repo) CountCompleted(ctx context.Context, openID string, albumID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, countCompletedSQL, openID, albumID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count completed: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Album aggregate flag
// ---------------------------------------------------------------------------

// GetUserAlbum returns the per-(user, album) aggregate flag.
// Returns domain.ErrNotFound when no row exists, which callers treat the
// same as completed = false.
func (r *Repo) GetUserAlbum(ctx context.Context, openID string, albumID int64) (*domain.UserAlbum, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ua domain.UserAlbum
	err := q.QueryRow(ctx, getUserAlbumSQL, openID, albumID).
		Scan(&ua.UserOpenID, &ua.AlbumID, &ua.Completed, &ua.CreatedAt, &ua.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_album", albumID)
	}
	return &ua, nil
}

// SetAlbumCompleted upserts the aggregate flag to completed.
func (r *Repo) SetAlbumCompleted(ctx context.Context, openID string, albumID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, setAlbumCompletedSQL, openID, albumID); err != nil {
		return postgres.MapError(err, "user_album", albumID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCompletion(row pgx.Row) (*domain.UserAlbumImage, error) {
	var c domain.UserAlbumImage
	err := row.Scan(&c.UserOpenID, &c.AlbumImageID, &c.Completed, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
