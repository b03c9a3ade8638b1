package schedule

import (
	"context"
	"fmt"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// MoveBetweenDays removes the scene ref at SourceIndex from the source day
// and inserts it at TargetIndex in the target day, recomputing both totals.
//
// The two day updates are issued as independent writes with no surrounding
// transaction. When the source write lands and the target write fails, the
// source is NOT rolled back; the returned MoveResult records exactly which
// sides persisted and the error is a *MoveError naming the failed side.
func (s *Service) MoveBetweenDays(ctx context.Context, input MoveInput) (*MoveResult, error) {
	if input.SourceDayID == input.TargetDayID {
		return s.moveWithinDay(ctx, input)
	}

	source, err := s.days.GetByID(ctx, input.SourceDayID)
	if err != nil {
		return nil, fmt.Errorf("get source day: %w", err)
	}
	target, err := s.days.GetByID(ctx, input.TargetDayID)
	if err != nil {
		return nil, fmt.Errorf("get target day: %w", err)
	}

	sourceOrder, ref, ok := domain.RemoveRefAt(source.SceneOrder, input.SourceIndex)
	if !ok {
		return nil, fmt.Errorf("day %s: index %d out of range (len=%d): %w",
			source.ID, input.SourceIndex, len(source.SceneOrder), domain.ErrNotFound)
	}
	targetOrder := domain.InsertRefAt(target.SceneOrder, ref, input.TargetIndex)

	sourceTotal, err := s.totalFor(ctx, sourceOrder)
	if err != nil {
		return nil, err
	}
	targetTotal, err := s.totalFor(ctx, targetOrder)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{Source: source, Target: target}

	updatedSource, err := s.days.UpdateOrder(ctx, source.ID, sourceOrder, sourceTotal)
	if err != nil {
		s.log.ErrorContext(ctx, "move: source update failed, nothing persisted",
			"source_day_id", source.ID, "target_day_id", target.ID, "error", err)
		return result, &MoveError{Side: "source", Err: err}
	}
	result.Source = updatedSource
	result.SourceUpdated = true

	updatedTarget, err := s.days.UpdateOrder(ctx, target.ID, targetOrder, targetTotal)
	if err != nil {
		s.log.ErrorContext(ctx, "move: target update failed, source already persisted",
			"source_day_id", source.ID, "target_day_id", target.ID, "error", err)
		return result, &MoveError{Side: "target", Err: err}
	}
	result.Target = updatedTarget
	result.TargetUpdated = true

	s.log.InfoContext(ctx, "scene moved between days",
		"scene_id", ref, "source_day_id", source.ID, "target_day_id", target.ID)
	return result, nil
}

// moveWithinDay handles the degenerate same-day move as a single write.
func (s *Service) moveWithinDay(ctx context.Context, input MoveInput) (*MoveResult, error) {
	day, err := s.ReorderWithinDay(ctx, input.SourceDayID, input.SourceIndex, input.TargetIndex)
	if err != nil {
		return nil, err
	}
	return &MoveResult{
		Source:        day,
		Target:        day,
		SourceUpdated: true,
		TargetUpdated: true,
	}, nil
}
