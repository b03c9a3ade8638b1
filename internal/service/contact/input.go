package contact

import (
	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateContactInput holds the parameters for creating one contact.
type CreateContactInput struct {
	ProjectID uuid.UUID
	Name      string
	Email     string
	Phone     string
	Role      string
	Company   string
	Notes     string
}

// Validate checks all fields and collects all errors.
func (i *CreateContactInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
