package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// NextImage resolves the single next (album, image, index) the user should
// work on. The policy is two-tier: continue the album of the most recent
// completion if it still has a following image, otherwise surface the first
// incomplete image of the most-recently-updated incomplete album. Returns
// (nil, nil) when every album is fully completed.
//
// Read-only; the discovery tier is O(albums × images) over the catalog.
func (s *Service) NextImage(ctx context.Context, openID string) (*NextImageResult, error) {
	if openID == "" {
		return nil, domain.NewValidationError("open_id", "required")
	}

	res, err := s.continueCurrentAlbum(ctx, openID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res, err = s.discoverNextAlbum(ctx, openID)
		if err != nil {
			return nil, err
		}
	}

	if res == nil {
		s.log.InfoContext(ctx, "next image resolved",
			slog.String("open_id", openID),
			slog.Bool("exhausted", true),
		)
		return nil, nil
	}

	s.log.InfoContext(ctx, "next image resolved",
		slog.String("open_id", openID),
		slog.Int64("album_id", res.Album.ID),
		slog.Int64("image_id", res.Image.ID),
		slog.Int("index", res.Index),
	)
	return res, nil
}

// continueCurrentAlbum returns the image following the user's most recent
// completion within the same album, or nil when that tier yields nothing:
// no completions yet, the album is already flagged complete, the completed
// image was the album's last, or the image/album has since been removed.
func (s *Service) continueCurrentAlbum(ctx context.Context, openID string) (*NextImageResult, error) {
	last, err := s.progress.MostRecentCompletion(ctx, openID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("most recent completion: %w", err)
	}

	img, err := s.albums.GetImage(ctx, last.AlbumImageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve completed image: %w", err)
	}

	album, err := s.albums.GetByID(ctx, img.ParentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve owning album: %w", err)
	}

	done, err := s.albumFlaggedComplete(ctx, openID, album.ID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, nil
	}

	images, err := s.albums.ListImages(ctx, album.ID)
	if err != nil {
		return nil, fmt.Errorf("list album images: %w", err)
	}

	for i, candidate := range images {
		if candidate.ID == img.ID && i+1 < len(images) {
			return newResult(album, images[i+1], i+1), nil
		}
	}
	return nil, nil
}

// discoverNextAlbum scans the catalog newest-first and returns the first
// incomplete image of the first album the user has not finished.
func (s *Service) discoverNextAlbum(ctx context.Context, openID string) (*NextImageResult, error) {
	albums, err := s.albums.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	for _, album := range albums {
		done, err := s.albumFlaggedComplete(ctx, openID, album.ID)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}

		completed, err := s.progress.CompletedImageIDs(ctx, openID, album.ID)
		if err != nil {
			return nil, fmt.Errorf("completed image ids: %w", err)
		}

		images, err := s.albums.ListImages(ctx, album.ID)
		if err != nil {
			return nil, fmt.Errorf("list album images: %w", err)
		}

		for i, img := range images {
			if !completed[img.ID] {
				return newResult(album, img, i), nil
			}
		}
	}

	return nil, nil
}

// albumFlaggedComplete reads the aggregate flag; a missing row counts as
// not complete.
func (s *Service) albumFlaggedComplete(ctx context.Context, openID string, albumID int64) (bool, error) {
	ua, err := s.progress.GetUserAlbum(ctx, openID, albumID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get user album: %w", err)
	}
	return ua.Completed, nil
}
