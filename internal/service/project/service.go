// Package project manages the root entities everything else is scoped to.
package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ============================================================================
// Consumer-defined interfaces (private)
// ============================================================================

type projectRepo interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Rename(ctx context.Context, projectID uuid.UUID, name string) (*domain.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// Service manages projects.
type Service struct {
	log      *slog.Logger
	projects projectRepo
}

func NewService(log *slog.Logger, projects projectRepo) *Service {
	return &Service{
		log:      log.With("service", "project"),
		projects: projects,
	}
}

func (s *Service) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	created, err := s.projects.Create(ctx, &domain.Project{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.InfoContext(ctx, "project created", "project_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	list, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return list, nil
}

func (s *Service) RenameProject(ctx context.Context, projectID uuid.UUID, name string) (*domain.Project, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	renamed, err := s.projects.Rename(ctx, projectID, name)
	if err != nil {
		return nil, fmt.Errorf("rename project: %w", err)
	}
	return renamed, nil
}

// DeleteProject removes the project and everything scoped under it via
// database cascades.
func (s *Service) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.InfoContext(ctx, "project deleted", "project_id", projectID)
	return nil
}
