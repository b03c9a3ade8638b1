package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateScript stores a new script draft.
func (s *Service) CreateScript(ctx context.Context, input CreateScriptInput) (*domain.Script, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	script := &domain.Script{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Body:      input.Body,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.scripts.Create(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("create script: %w", err)
	}

	s.log.InfoContext(ctx, "script created",
		"script_id", created.ID, "project_id", created.ProjectID, "title", created.Title)
	return created, nil
}

// GetScript returns one script.
func (s *Service) GetScript(ctx context.Context, scriptID uuid.UUID) (*domain.Script, error) {
	script, err := s.scripts.GetByID(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}
	return script, nil
}

// ListScripts returns a project's scripts, newest first.
func (s *Service) ListScripts(ctx context.Context, projectID uuid.UUID) ([]domain.Script, error) {
	scripts, err := s.scripts.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return scripts, nil
}

// UpdateScriptBody replaces a script's body and notes.
func (s *Service) UpdateScriptBody(ctx context.Context, scriptID uuid.UUID, body, notes string) (*domain.Script, error) {
	updated, err := s.scripts.UpdateBody(ctx, scriptID, body, notes)
	if err != nil {
		return nil, fmt.Errorf("update script body: %w", err)
	}
	return updated, nil
}

// DeleteScript removes a script draft.
func (s *Service) DeleteScript(ctx context.Context, scriptID uuid.UUID) error {
	if err := s.scripts.Delete(ctx, scriptID); err != nil {
		return fmt.Errorf("delete script: %w", err)
	}
	s.log.InfoContext(ctx, "script deleted", "script_id", scriptID)
	return nil
}
