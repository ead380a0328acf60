// Package counter implements the demo tap counter.
package counter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kevin930119/CSPQWServer/internal/domain"
)

// Actions accepted by Apply.
const (
	ActionInc   = "inc"
	ActionClear = "clear"
)

type counterRepo interface {
	Increment(ctx context.Context) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Service implements counter business logic.
type Service struct {
	counters counterRepo
	log      *slog.Logger
}

// NewService creates a new counter service.
func NewService(log *slog.Logger, counters counterRepo) *Service {
	return &Service{
		counters: counters,
		log:      log.With("service", "counter"),
	}
}

// Apply performs the requested action and returns the resulting count.
func (s *Service) Apply(ctx context.Context, action string) (int, error) {
	switch action {
	case ActionInc:
		if err := s.counters.Increment(ctx); err != nil {
			return 0, fmt.Errorf("increment: %w", err)
		}
	case ActionClear:
		if err := s.counters.Clear(ctx); err != nil {
			return 0, fmt.Errorf("clear: %w", err)
		}
	default:
		return 0, domain.NewValidationError("action", "must be inc or clear")
	}

	n, err := s.counters.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Current returns the current count without mutating it.
func (s *Service) Current(ctx context.Context) (int, error) {
	n, err := s.counters.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
