package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateDay creates a new stripboard day. TotalMins is computed from the
// initial order; an absent target falls back to the configured default.
func (s *Service) CreateDay(ctx context.Context, input CreateDayInput) (*domain.StripDay, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	target := s.cfg.DefaultTargetMins
	if input.TargetMins != nil {
		target = *input.TargetMins
	}

	total, err := s.totalFor(ctx, input.InitialOrder)
	if err != nil {
		return nil, err
	}

	order := input.InitialOrder
	if order == nil {
		order = []uuid.UUID{}
	}

	day := &domain.StripDay{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		ShootDate:  input.ShootDate,
		SceneOrder: order,
		TargetMins: target,
		TotalMins:  total,
		UpdatedAt:  time.Now().UTC(),
	}

	created, err := s.days.Create(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("create day: %w", err)
	}

	s.log.InfoContext(ctx, "day created",
		"day_id", created.ID, "project_id", created.ProjectID,
		"scenes", len(created.SceneOrder), "total_mins", created.TotalMins)
	return created, nil
}
