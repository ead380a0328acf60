// Package album implements the catalog listing logic: paginated albums and
// images, decorated with the caller's completion state when an identity is
// present.
package album

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

type albumRepo interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Album, int, error)
	ListImagesPage(ctx context.Context, albumID int64, limit, offset int) ([]*domain.AlbumImage, int, error)
}

type progressRepo interface {
	CountCompleted(ctx context.Context, openID string, albumID int64) (int, error)
	CompletedImageIDs(ctx context.Context, openID string, albumID int64) (map[int64]bool, error)
}

// Service implements catalog listings.
type Service struct {
	albums          albumRepo
	progress        progressRepo
	log             *slog.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewService creates a new album service.
func NewService(log *slog.Logger, albums albumRepo, progress progressRepo, defaultPageSize, maxPageSize int) *Service {
	return &Service{
		albums:          albums,
		progress:        progress,
		log:             log.With("service", "album"),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Pagination echoes the requested page back to the client with the total
// row count.
type Pagination struct {
	Current  int
	PageSize int
	Total    int
}

// AlbumItem is one album row with the caller's completed-image count.
// Completed stays 0 for anonymous callers.
type AlbumItem struct {
	ID        int64
	Name      string
	Type      string
	Cover     string
	Total     int
	Completed int
}

// ImageItem is one image row with the caller's completion flag.
type ImageItem struct {
	ID        int64
	ParentID  int64
	Name      string
	Level     int
	ListCover string
	Pic       string
	Type      string
	Completed bool
}

// AlbumPage is a page of decorated albums.
type AlbumPage struct {
	List       []AlbumItem
	Pagination Pagination
}

// ImagePage is a page of decorated images.
type ImagePage struct {
	List       []ImageItem
	Pagination Pagination
}

// normalizePage clamps page/pageSize to sane values.
func (s *Service) normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return page, pageSize
}

// ListAlbums returns one page of the catalog, newest-first. When openID is
// non-empty each album carries the caller's completed-image count.
func (s *Service) ListAlbums(ctx context.Context, openID string, page, pageSize int) (*AlbumPage, error) {
	page, pageSize = s.normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	albums, total, err := s.albums.List(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	items := make([]AlbumItem, 0, len(albums))
	for _, a := range albums {
		item := AlbumItem{
			ID:    a.ID,
			Name:  a.Name,
			Type:  a.Type,
			Cover: a.Cover,
			Total: a.Total,
		}
		if openID != "" {
			completed, err := s.progress.CountCompleted(ctx, openID, a.ID)
			if err != nil {
				return nil, fmt.Errorf("count completed for album %d: %w", a.ID, err)
			}
			item.Completed = completed
		}
		items = append(items, item)
	}

	return &AlbumPage{
		List:       items,
		Pagination: Pagination{Current: page, PageSize: pageSize, Total: total},
	}, nil
}

// ListImages returns one page of an album's images, level ascending. When
// openID is non-empty each image carries the caller's completion flag.
func (s *Service) ListImages(ctx context.Context, openID string, albumID int64, page, pageSize int) (*ImagePage, error) {
	if albumID <= 0 {
		return nil, domain.NewValidationError("parent_id", "required")
	}
	page, pageSize = s.normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	images, total, err := s.albums.ListImagesPage(ctx, albumID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	var completed map[int64]bool
	if openID != "" {
		completed, err = s.progress.CompletedImageIDs(ctx, openID, albumID)
		if err != nil {
			return nil, fmt.Errorf("completed image ids: %w", err)
		}
	}

	items := make([]ImageItem, 0, len(images))
	for _, img := range images {
		items = append(items, ImageItem{
			ID:        img.ID,
			ParentID:  img.ParentID,
			Name:      img.Name,
			Level:     img.Level,
			ListCover: img.ListCover,
			Pic:       img.Pic,
			Type:      img.Type,
			Completed: completed[img.ID],
		})
	}

	return &ImagePage{
		List:       items,
		Pagination: Pagination{Current: page, PageSize: pageSize, Total: total},
	}, nil
}
