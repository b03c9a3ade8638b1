package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateScene creates a scene. Priority defaults to medium when unset.
func (s *Service) CreateScene(ctx context.Context, input CreateSceneInput) (*domain.Scene, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	scene := &domain.Scene{
		ID:           uuid.New(),
		ProjectID:    input.ProjectID,
		Slugline:     input.Slugline,
		Summary:      input.Summary,
		Location:     input.Location,
		DurationMins: input.DurationMins,
		Priority:     priority,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.scenes.Create(ctx, scene)
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	s.log.InfoContext(ctx, "scene created",
		"scene_id", created.ID, "project_id", created.ProjectID, "slugline", created.Slugline)
	return created, nil
}

// GetScene returns one scene.
func (s *Service) GetScene(ctx context.Context, sceneID uuid.UUID) (*domain.Scene, error) {
	scene, err := s.scenes.GetByID(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}
	return scene, nil
}

// ListScenes returns a project's scenes.
func (s *Service) ListScenes(ctx context.Context, projectID uuid.UUID) ([]domain.Scene, error) {
	scenes, err := s.scenes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return scenes, nil
}

// UpdateScene merges a partial update over the stored scene. A duration
// edit leaves day totals stale until their next recompute.
func (s *Service) UpdateScene(ctx context.Context, sceneID uuid.UUID, input UpdateSceneInput) (*domain.Scene, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	scene, err := s.scenes.GetByID(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}

	if input.Slugline != nil {
		scene.Slugline = *input.Slugline
	}
	if input.Summary != nil {
		scene.Summary = *input.Summary
	}
	if input.Location != nil {
		scene.Location = *input.Location
	}
	if input.DurationMins != nil {
		scene.DurationMins = *input.DurationMins
	}
	if input.Priority != nil {
		scene.Priority = *input.Priority
	}
	scene.UpdatedAt = time.Now().UTC()

	updated, err := s.scenes.Update(ctx, scene)
	if err != nil {
		return nil, fmt.Errorf("update scene: %w", err)
	}
	return updated, nil
}

// DeleteScene removes a scene. Day orders that still reference it keep the
// dangling ref, which from then on contributes zero to totals.
func (s *Service) DeleteScene(ctx context.Context, sceneID uuid.UUID) error {
	if err := s.scenes.Delete(ctx, sceneID); err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	s.log.InfoContext(ctx, "scene deleted", "scene_id", sceneID)
	return nil
}
