package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// CreateDayInput holds the parameters for creating a stripboard day.
type CreateDayInput struct {
	ProjectID    uuid.UUID
	ShootDate    time.Time
	TargetMins   *int
	InitialOrder []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CreateDayInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.ShootDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "shoot_date", Message: "required"})
	}
	if i.TargetMins != nil && *i.TargetMins < 0 {
		errs = append(errs, domain.FieldError{Field: "target_mins", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveInput holds the parameters for moving a scene ref between two days.
type MoveInput struct {
	SourceDayID uuid.UUID
	TargetDayID uuid.UUID
	SourceIndex int
	TargetIndex int
}
