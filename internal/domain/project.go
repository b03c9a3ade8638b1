package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is the root entity scoping days, scenes, elements and budgets.
type Project struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
