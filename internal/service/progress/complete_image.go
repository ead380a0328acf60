package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// CompleteImage records that the user completed the image and returns the
// user's updated score. Repeated calls for the same (user, image) are no-ops
// that report the current score; the marker set, the rank increment, and the
// album aggregate recompute commit in one transaction or not at all.
func (s *Service) CompleteImage(ctx context.Context, openID string, imageID int64) (int, error) {
	if openID == "" {
		return 0, domain.NewValidationError("open_id", "required")
	}
	if imageID <= 0 {
		return 0, domain.NewValidationError("image_id", "required")
	}

	img, err := s.albums.GetImage(ctx, imageID)
	if err != nil {
		return 0, fmt.Errorf("get image: %w", err)
	}

	usr, err := s.users.GetByOpenID(ctx, openID)
	if err != nil {
		return 0, fmt.Errorf("get user: %w", err)
	}

	// Fast path: already completed, nothing to do.
	existing, err := s.progress.GetCompletion(ctx, openID, imageID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("get completion: %w", err)
	}
	if existing != nil && existing.Completed {
		return usr.Rank, nil
	}

	var rank int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		flipped, err := s.progress.MarkCompleted(txCtx, openID, imageID)
		if err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}

		// Lost a race with a concurrent duplicate: the marker was already
		// completed when our upsert ran. Report the committed score without
		// incrementing.
		if !flipped {
			current, err := s.users.GetByOpenID(txCtx, openID)
			if err != nil {
				return fmt.Errorf("reload user: %w", err)
			}
			rank = current.Rank
			return nil
		}

		rank, err = s.users.IncrementRank(txCtx, openID, 1)
		if err != nil {
			return fmt.Errorf("increment rank: %w", err)
		}

		if err := s.updateAlbumAggregate(txCtx, openID, img.ParentID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "image completed",
		slog.String("open_id", openID),
		slog.Int64("image_id", imageID),
		slog.Int64("album_id", img.ParentID),
		slog.Int("rank", rank),
	)
	return rank, nil
}

// updateAlbumAggregate sets the per-(user, album) flag when the user has now
// completed every image of the album. Runs inside the completion transaction
// so the flag can never be observed ahead of the markers it summarizes.
func (s *Service) updateAlbumAggregate(ctx context.Context, openID string, albumID int64) error {
	total, err := s.albums.CountImages(ctx, albumID)
	if err != nil {
		return fmt.Errorf("count album images: %w", err)
	}

	completed, err := s.progress.CountCompleted(ctx, openID, albumID)
	if err != nil {
		return fmt.Errorf("count completed: %w", err)
	}

	if total > 0 && completed >= total {
		if err := s.progress.SetAlbumCompleted(ctx, openID, albumID); err != nil {
			return fmt.Errorf("set album completed: %w", err)
		}
	}
	return nil
}
