package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PruneOrphanedScenes removes references to deleted scenes from every day
// of a project and recomputes the affected totals. Returns the number of
// references removed. Orphans accumulate because deleting a scene does not
// rewrite the day orders that mention it.
func (s *Service) PruneOrphanedScenes(ctx context.Context, projectID uuid.UUID) (int, error) {
	days, err := s.days.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("list days: %w", err)
	}

	removed := 0
	for i := range days {
		day := &days[i]
		if len(day.SceneOrder) == 0 {
			continue
		}

		durations, err := s.durations.DurationsByIDs(ctx, day.SceneOrder)
		if err != nil {
			return removed, fmt.Errorf("load durations: %w", err)
		}

		kept := make([]uuid.UUID, 0, len(day.SceneOrder))
		total := 0
		for _, id := range day.SceneOrder {
			mins, ok := durations[id]
			if !ok {
				continue
			}
			kept = append(kept, id)
			total += mins
		}
		if len(kept) == len(day.SceneOrder) {
			continue
		}

		if _, err := s.days.UpdateOrder(ctx, day.ID, kept, total); err != nil {
			return removed, fmt.Errorf("update day %s: %w", day.ID, err)
		}
		removed += len(day.SceneOrder) - len(kept)
		s.log.InfoContext(ctx, "pruned orphaned scene refs",
			"day_id", day.ID,
			"removed", len(day.SceneOrder)-len(kept),
		)
	}
	return removed, nil
}
