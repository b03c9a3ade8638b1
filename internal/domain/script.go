package domain

import (
	"time"

	"github.com/google/uuid"
)

// Script is a screenplay draft belonging to a project.
type Script struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Body      string
	// Notes carries assistant-produced annotations (formatting issues,
	// improvement suggestions) as free text.
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
