// Package progress implements the core progression logic: resolving the next
// image a user should work on, and the idempotent completion transaction that
// advances their score.
package progress

import (
	"context"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type albumRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Album, error)
	ListRecent(ctx context.Context) ([]*domain.Album, error)
	GetImage(ctx context.Context, id int64) (*domain.AlbumImage, error)
	ListImages(ctx context.Context, albumID int64) ([]*domain.AlbumImage, error)
	CountImages(ctx context.Context, albumID int64) (int, error)
}

type progressRepo interface {
	GetCompletion(ctx context.Context, openID string, imageID int64) (*domain.UserAlbumImage, error)
	MostRecentCompletion(ctx context.Context, openID string) (*domain.UserAlbumImage, error)
	MarkCompleted(ctx context.Context, openID string, imageID int64) (bool, error)
	CompletedImageIDs(ctx context.Context, openID string, albumID int64) (map[int64]bool, error)
	CountCompleted(ctx context.Context, openID string, albumID int64) (int, error)
	GetUserAlbum(ctx context.Context, openID string, albumID int64) (*domain.UserAlbum, error)
	SetAlbumCompleted(ctx context.Context, openID string, albumID int64) error
}

type userRepo interface {
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)
	IncrementRank(ctx context.Context, openID string, delta int) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the progression business logic.
type Service struct {
	albums   albumRepo
	progress progressRepo
	users    userRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new progression service.
func NewService(log *slog.Logger, albums albumRepo, progress progressRepo, users userRepo, tx txManager) *Service {
	return &Service{
		albums:   albums,
		progress: progress,
		users:    users,
		tx:       tx,
		log:      log.With("service", "progress"),
	}
}
