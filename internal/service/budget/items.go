package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateItem creates a line item with its total derived from qty and unit
// price. An empty currency falls back to the default.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.BudgetLineItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	now := time.Now().UTC()
	item := &domain.BudgetLineItem{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Scope:       input.Scope,
		RefID:       input.RefID,
		Description: input.Description,
		Category:    input.Category,
		Qty:         input.Qty,
		UnitCents:   input.UnitCents,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.TotalCents = item.ComputeTotal()

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.InfoContext(ctx, "budget item created",
		"item_id", created.ID, "scope", created.Scope, "total_cents", created.TotalCents)
	return created, nil
}

// UpdateItem applies a partial update. Fields absent from the patch keep
// their stored values, and the total is recomputed from the merged row
// whenever qty or unit price is touched.
func (s *Service) UpdateItem(ctx context.Context, itemID uuid.UUID, patch domain.BudgetItemPatch) (*domain.BudgetLineItem, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.items.UpdatePartial(ctx, itemID, patch)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

// GetItem returns one line item.
func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.BudgetLineItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListByScope returns line items for the exact scope+ref pair. Scope is not
// traversed hierarchically: project-scope listings never pull in day items.
func (s *Service) ListByScope(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID, filter domain.BudgetItemFilter) ([]domain.BudgetLineItem, error) {
	if !domain.ValidBudgetScope(scope) {
		return nil, domain.NewValidationError("scope", "unknown scope")
	}

	items, err := s.items.ListByScope(ctx, scope, refID, filter)
	if err != nil {
		return nil, fmt.Errorf("list by scope: %w", err)
	}
	return items, nil
}

// ListByProject returns every line item of a project across all scopes.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLineItem, error) {
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list by project: %w", err)
	}
	return items, nil
}

// DeleteItem removes a line item.
func (s *Service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.InfoContext(ctx, "budget item deleted", "item_id", itemID)
	return nil
}
