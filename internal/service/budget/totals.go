package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CalculateScopeTotals lists items for a scope+ref pair and rolls them up.
func (s *Service) CalculateScopeTotals(ctx context.Context, scope domain.BudgetScope, refID uuid.UUID) (domain.BudgetTotals, error) {
	items, err := s.ListByScope(ctx, scope, refID, domain.BudgetItemFilter{})
	if err != nil {
		return domain.BudgetTotals{}, err
	}
	return domain.CalculateTotals(items), nil
}

// CalculateDayTotals rolls up the items attributed directly to one day.
func (s *Service) CalculateDayTotals(ctx context.Context, dayID uuid.UUID) (domain.BudgetTotals, error) {
	return s.CalculateScopeTotals(ctx, domain.ScopeDay, dayID)
}

// CalculateProjectTotals rolls up every item of a project across all scopes.
func (s *Service) CalculateProjectTotals(ctx context.Context, projectID uuid.UUID) (domain.BudgetTotals, error) {
	items, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return domain.BudgetTotals{}, err
	}
	return domain.CalculateTotals(items), nil
}
