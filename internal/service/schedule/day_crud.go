package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// GetDay returns one stripboard day.
func (s *Service) GetDay(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error) {
	day, err := s.days.GetByID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}
	return day, nil
}

// ListDays returns a project's days in shoot date order.
func (s *Service) ListDays(ctx context.Context, projectID uuid.UUID) ([]domain.StripDay, error) {
	days, err := s.days.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	return days, nil
}

// SetDayTarget updates a day's target minutes.
func (s *Service) SetDayTarget(ctx context.Context, dayID uuid.UUID, targetMins int) (*domain.StripDay, error) {
	if targetMins < 0 {
		return nil, domain.NewValidationError("target_mins", "must not be negative")
	}

	day, err := s.days.UpdateTarget(ctx, dayID, targetMins)
	if err != nil {
		return nil, fmt.Errorf("update target: %w", err)
	}
	return day, nil
}

// RefreshDayTotal recomputes a day's cached total from current scene
// durations. TotalMins goes stale when a scene's duration is edited after
// the last order write; this closes that window on demand.
func (s *Service) RefreshDayTotal(ctx context.Context, dayID uuid.UUID) (*domain.StripDay, error) {
	day, err := s.days.GetByID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	total, err := s.totalFor(ctx, day.SceneOrder)
	if err != nil {
		return nil, err
	}
	if total == day.TotalMins {
		return day, nil
	}

	updated, err := s.days.UpdateOrder(ctx, dayID, day.SceneOrder, total)
	if err != nil {
		return nil, fmt.Errorf("update total: %w", err)
	}
	return updated, nil
}

// DeleteDay removes a day. Scene records referenced by the day's order are
// left untouched.
func (s *Service) DeleteDay(ctx context.Context, dayID uuid.UUID) error {
	if err := s.days.Delete(ctx, dayID); err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	s.log.InfoContext(ctx, "day deleted", "day_id", dayID)
	return nil
}
