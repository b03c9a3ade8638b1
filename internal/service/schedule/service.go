package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/config"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type dayRepo interface {
	Create(ctx context.Context, day *domain.StripDay) (*domain.StripDay, error)
	GetByID(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.StripDay, error)
	UpdateOrder(ctx context.Context, dayID uuid.UUID, order []uuid.UUID, totalMins int) (*domain.StripDay, error)
	UpdateTarget(ctx context.Context, dayID uuid.UUID, targetMins int) (*domain.StripDay, error)
	Delete(ctx context.Context, dayID uuid.UUID) error
}

type durationSource interface {
	DurationsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements stripboard day scheduling.
type Service struct {
	log       *slog.Logger
	days      dayRepo
	durations durationSource
	cfg       config.ScheduleConfig
}

// NewService creates a new Schedule service.
func NewService(
	logger *slog.Logger,
	days dayRepo,
	durations durationSource,
	cfg config.ScheduleConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "schedule"),
		days:      days,
		durations: durations,
		cfg:       cfg,
	}
}

// totalFor recomputes the scheduled minutes for an order from current scene
// durations. Refs the duration source does not know contribute zero.
func (s *Service) totalFor(ctx context.Context, order []uuid.UUID) (int, error) {
	if len(order) == 0 {
		return 0, nil
	}

	seen := make(map[uuid.UUID]bool, len(order))
	unique := make([]uuid.UUID, 0, len(order))
	for _, id := range order {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	durations, err := s.durations.DurationsByIDs(ctx, unique)
	if err != nil {
		return 0, fmt.Errorf("load durations: %w", err)
	}
	return domain.SumDurations(order, durations), nil
}
