// Package production manages the project catalog: scenes, elements,
// scripts and call sheets. The assistant writers fan their results out
// through this service.
package production

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sceneRepo interface {
	Create(ctx context.Context, s *domain.Scene) (*domain.Scene, error)
	GetByID(ctx context.Context, sceneID uuid.UUID) (*domain.Scene, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Scene, error)
	Update(ctx context.Context, s *domain.Scene) (*domain.Scene, error)
	Delete(ctx context.Context, sceneID uuid.UUID) error
}

type elementRepo interface {
	Create(ctx context.Context, e *domain.Element) (*domain.Element, error)
	GetByID(ctx context.Context, elementID uuid.UUID) (*domain.Element, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, elementType domain.ElementType) ([]domain.Element, error)
	Delete(ctx context.Context, elementID uuid.UUID) error
}

type scriptRepo interface {
	Create(ctx context.Context, s *domain.Script) (*domain.Script, error)
	GetByID(ctx context.Context, scriptID uuid.UUID) (*domain.Script, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Script, error)
	UpdateBody(ctx context.Context, scriptID uuid.UUID, body, notes string) (*domain.Script, error)
	Delete(ctx context.Context, scriptID uuid.UUID) error
}

type sheetRepo interface {
	Create(ctx context.Context, cs *domain.CallSheet) (*domain.CallSheet, error)
	GetByID(ctx context.Context, sheetID uuid.UUID) (*domain.CallSheet, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.CallSheet, error)
	Delete(ctx context.Context, sheetID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements catalog business logic.
type Service struct {
	log      *slog.Logger
	scenes   sceneRepo
	elements elementRepo
	scripts  scriptRepo
	sheets   sheetRepo
}

// NewService creates a new Production service.
func NewService(
	logger *slog.Logger,
	scenes sceneRepo,
	elements elementRepo,
	scripts scriptRepo,
	sheets sheetRepo,
) *Service {
	return &Service{
		log:      logger.With("service", "production"),
		scenes:   scenes,
		elements: elements,
		scripts:  scripts,
		sheets:   sheets,
	}
}
