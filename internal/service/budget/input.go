package budget

import (
	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateItemInput holds the parameters for creating a budget line item.
type CreateItemInput struct {
	ProjectID   uuid.UUID
	Scope       domain.BudgetScope
	RefID       uuid.UUID
	Description string
	Category    string
	Qty         int
	UnitCents   int64
	Currency    string
}

// Validate checks all fields and collects all errors.
func (i *CreateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if !domain.ValidBudgetScope(i.Scope) {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "unknown scope"})
	}
	if i.RefID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "ref_id", Message: "required"})
	}
	if i.Qty < 0 {
		errs = append(errs, domain.FieldError{Field: "qty", Message: "must not be negative"})
	}
	if i.UnitCents < 0 {
		errs = append(errs, domain.FieldError{Field: "unit_cents", Message: "must not be negative"})
	}
	if i.Currency != "" && !domain.ValidCurrencyCode(i.Currency) {
		errs = append(errs, domain.FieldError{Field: "currency", Message: "unknown currency code"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// validatePatch rejects partial fields that would break row invariants.
func validatePatch(p domain.BudgetItemPatch) error {
	var errs []domain.FieldError

	if p.Qty != nil && *p.Qty < 0 {
		errs = append(errs, domain.FieldError{Field: "qty", Message: "must not be negative"})
	}
	if p.UnitCents != nil && *p.UnitCents < 0 {
		errs = append(errs, domain.FieldError{Field: "unit_cents", Message: "must not be negative"})
	}
	if p.Currency != nil && !domain.ValidCurrencyCode(*p.Currency) {
		errs = append(errs, domain.FieldError{Field: "currency", Message: "unknown currency code"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
