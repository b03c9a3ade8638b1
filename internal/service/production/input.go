package production

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateSceneInput holds the parameters for creating a scene.
type CreateSceneInput struct {
	ProjectID    uuid.UUID
	Slugline     string
	Summary      string
	Location     string
	DurationMins int
	Priority     domain.ScenePriority
}

// Validate checks all fields and collects all errors.
func (i *CreateSceneInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Slugline == "" {
		errs = append(errs, domain.FieldError{Field: "slugline", Message: "required"})
	}
	if i.DurationMins < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_mins", Message: "must not be negative"})
	}
	switch i.Priority {
	case "", domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
	default:
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSceneInput carries a partial scene update. Nil fields keep their
// stored value.
type UpdateSceneInput struct {
	Slugline     *string
	Summary      *string
	Location     *string
	DurationMins *int
	Priority     *domain.ScenePriority
}

// Validate checks all fields and collects all errors.
func (i *UpdateSceneInput) Validate() error {
	var errs []domain.FieldError

	if i.Slugline != nil && *i.Slugline == "" {
		errs = append(errs, domain.FieldError{Field: "slugline", Message: "must not be empty"})
	}
	if i.DurationMins != nil && *i.DurationMins < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_mins", Message: "must not be negative"})
	}
	if i.Priority != nil {
		switch *i.Priority {
		case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		default:
			errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateElementInput holds the parameters for creating a catalog element.
type CreateElementInput struct {
	ProjectID      uuid.UUID
	Type           domain.ElementType
	Name           string
	Description    string
	Notes          string
	EstimatedCents int64
}

// Validate checks all fields and collects all errors.
func (i *CreateElementInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if !domain.ValidElementType(i.Type) {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown element type"})
	}
	if i.EstimatedCents < 0 {
		errs = append(errs, domain.FieldError{Field: "estimated_cents", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateScriptInput holds the parameters for creating a script draft.
type CreateScriptInput struct {
	ProjectID uuid.UUID
	Title     string
	Body      string
	Notes     string
}

// Validate checks all fields and collects all errors.
func (i *CreateScriptInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateCallSheetInput holds the parameters for storing a call sheet.
type CreateCallSheetInput struct {
	ProjectID uuid.UUID
	ShootDate time.Time
	Sheet     json.RawMessage
}

// Validate checks all fields and collects all errors.
func (i *CreateCallSheetInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.ShootDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "shoot_date", Message: "required"})
	}
	if len(i.Sheet) == 0 || !json.Valid(i.Sheet) {
		errs = append(errs, domain.FieldError{Field: "sheet", Message: "must be a JSON document"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
