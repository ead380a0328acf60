// Package album implements the Album and AlbumImage repository using PostgreSQL.
// Albums and their images are written by the content pipeline; this repo only
// reads them, so every method is a plain query with deterministic ordering.
package album

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// psql builds queries with $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides album and album-image persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new album repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const albumColumns = `id, name, type, cover, total, created_at, updated_at`

const getAlbumSQL = `
SELECT ` + albumColumns + `
FROM albums
WHERE id = $1`

const listRecentSQL = `
SELECT ` + albumColumns + `
FROM albums
ORDER BY updated_at DESC, id DESC`

const imageColumns = `id, parent_id, name, level, list_cover, pic, type, created_at, updated_at`

const getImageSQL = `
SELECT ` + imageColumns + `
FROM album_images
WHERE id = $1`

const listImagesSQL = `
SELECT ` + imageColumns + `
FROM album_images
WHERE parent_id = $1
ORDER BY level ASC, id ASC`

const countImagesSQL = `
SELECT count(*) FROM album_images WHERE parent_id = $1`

// ---------------------------------------------------------------------------
// Album reads
// ---------------------------------------------------------------------------

// GetByID returns an album by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Album, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAlbum(q.QueryRow(ctx, getAlbumSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "album", id)
	}
	return a, nil
}

// ListRecent returns the whole catalog ordered by most-recently-updated first.
// Used by the progression resolver's discovery scan; the catalog is assumed
// modest, so no pagination here.
func (r *Repo) ListRecent(ctx context.Context) ([]*domain.Album, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listRecentSQL)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums, err := scanAlbums(rows)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// List returns one page of the catalog (updated_at DESC) together with the
// total album count.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.Album, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select("id", "name", "type", "cover", "total", "created_at", "updated_at").
		From("albums").
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build album page query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list album page: %w", err)
	}
	defer rows.Close()

	albums, err := scanAlbums(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list album page: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM albums`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count albums: %w", err)
	}

	return albums, total, nil
}

// ---------------------------------------------------------------------------
// AlbumImage reads
// ---------------------------------------------------------------------------

// GetImage returns an album image by primary key.
func (r *Repo) GetImage(ctx context.Context, id int64) (*domain.AlbumImage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	img, err := scanImage(q.QueryRow(ctx, getImageSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "album_image", id)
	}
	return img, nil
}

// ListImages returns every image of an album ordered by (level ASC, id ASC).
// The id tie-break keeps the sequence deterministic when levels repeat.
func (r *Repo) ListImages(ctx context.Context, albumID int64) ([]*domain.AlbumImage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listImagesSQL, albumID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// ListImagesPage returns one page of an album's images (level ASC) together
// with the album's total image count.
func (r *Repo) ListImagesPage(ctx context.Context, albumID int64, limit, offset int) ([]*domain.AlbumImage, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select("id", "parent_id", "name", "level", "list_cover", "pic", "type", "created_at", "updated_at").
		From("album_images").
		Where(squirrel.Eq{"parent_id": albumID}).
		OrderBy("level ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build image page query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list image page: %w", err)
	}
	defer rows.Close()

	images, err := scanImages(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list image page: %w", err)
	}

	total, err := r.CountImages(ctx, albumID)
	if err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// CountImages returns the number of images in an album.
func (r *Repo) CountImages(ctx context.Context, albumID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, countImagesSQL, albumID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanAlbum(row pgx.Row) (*domain.Album, error) {
	var a domain.Album
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.Cover, &a.Total, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAlbums(rows pgx.Rows) ([]*domain.Album, error) {
	albums := make([]*domain.Album, 0)
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func scanImage(row pgx.Row) (*domain.AlbumImage, error) {
	var img domain.AlbumImage
	err := row.Scan(&img.ID, &img.ParentID, &img.Name, &img.Level,
		&img.ListCover, &img.Pic, &img.Type, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func scanImages(rows pgx.Rows) ([]*domain.AlbumImage, error) {
	images := make([]*domain.AlbumImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
