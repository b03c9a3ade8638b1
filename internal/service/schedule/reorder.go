package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ReorderWithinDay moves the scene ref at fromIndex to toIndex inside one
// day's order and recomputes the day total from current scene durations.
// Out-of-bounds indices report not found, same as an unknown day.
func (s *Service) ReorderWithinDay(ctx context.Context, dayID uuid.UUID, fromIndex, toIndex int) (*domain.StripDay, error) {
	day, err := s.days.GetByID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	order, ok := domain.ReorderRefs(day.SceneOrder, fromIndex, toIndex)
	if !ok {
		return nil, fmt.Errorf("day %s: index out of range (from=%d, to=%d, len=%d): %w",
			dayID, fromIndex, toIndex, len(day.SceneOrder), domain.ErrNotFound)
	}

	total, err := s.totalFor(ctx, order)
	if err != nil {
		return nil, err
	}

	updated, err := s.days.UpdateOrder(ctx, dayID, order, total)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.log.InfoContext(ctx, "day reordered",
		"day_id", dayID, "from", fromIndex, "to", toIndex, "total_mins", updated.TotalMins)
	return updated, nil
}
