package budget

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	Create(ctx context.Context, item *domain.BudgetLineItem) (*domain.BudgetLineItem, error)
	GetByID(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error)
	UpdatePartial(ctx context.Context, itemID uuid.UUID, p domain.BudgetItemPatch) (*domain.BudgetLineItem, error)
	ListByScope(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements budget line-item business logic.
type Service struct {
	log   *slog.Logger
	items itemRepo
}

// NewService creates a new Budget service.
func NewService(logger *slog.Logger, items itemRepo) *Service {
	return &Service{
		log:   logger.With("service", "budget"),
		items: items,
	}
}
