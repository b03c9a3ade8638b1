package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScenePriority grades how critical a scene is to the schedule.
type ScenePriority string

const (
	PriorityHigh   ScenePriority = "high"
	PriorityMedium ScenePriority = "medium"
	PriorityLow    ScenePriority = "low"
)

// Scene is a script scene. Scenes are independent entities: they are
// referenced from strip days but not owned by them, so deleting a day never
// touches its scenes.
type Scene struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	Slugline     string
	Summary      string
	Location     string
	DurationMins int
	Priority     ScenePriority
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
