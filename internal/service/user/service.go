// Package user implements registration-on-first-contact and the leaderboard
// projection.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

type userRepo interface {
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	TopByRank(ctx context.Context, limit int) ([]*domain.User, error)
}

// Service implements user business logic.
type Service struct {
	users           userRepo
	log             *slog.Logger
	leaderboardSize int
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo, leaderboardSize int) *Service {
	return &Service{
		users:           users,
		log:             log.With("service", "user"),
		leaderboardSize: leaderboardSize,
	}
}

// RegisterOrFetch returns the user for the given open id, creating it with
// empty profile fields and score 0 on first contact. Racing first contacts
// converge on the single row the database accepted.
func (s *Service) RegisterOrFetch(ctx context.Context, openID string) (*domain.User, error) {
	if openID == "" {
		return nil, domain.NewValidationError("open_id", "required")
	}

	u, err := s.users.GetByOpenID(ctx, openID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{OpenID: openID})
	if err != nil {
		// Lost a race with a concurrent first contact; the row exists now.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.users.GetByOpenID(ctx, openID)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("open_id", openID))
	return created, nil
}

// Leaderboard returns the top users by score with 1-based positions.
// Ties order arbitrarily.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	users, err := s.users.TopByRank(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("top by rank: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = domain.LeaderboardEntry{
			Position: i + 1,
			Nickname: u.Nickname,
			Icon:     u.Icon,
			Score:    u.Rank,
		}
	}
	return entries, nil
}
