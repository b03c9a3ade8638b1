package domain

import (
	"time"

	"github.com/google/uuid"
)

// ElementType categorizes a catalog element.
type ElementType string

const (
	ElementProp      ElementType = "prop"
	ElementCostume   ElementType = "costume"
	ElementLocation  ElementType = "location"
	ElementCharacter ElementType = "character"
	ElementTechnical ElementType = "technical"
	ElementShot      ElementType = "shot"
)

// ValidElementType reports whether t is a known element type.
func ValidElementType(t ElementType) bool {
	switch t {
	case ElementProp, ElementCostume, ElementLocation,
		ElementCharacter, ElementTechnical, ElementShot:
		return true
	}
	return false
}

// Element is one production catalog entry: a prop, costume, location,
// character requirement or technical need extracted during breakdown.
type Element struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Type           ElementType
	Name           string
	Description    string
	Notes          string
	EstimatedCents int64
	CreatedAt      time.Time
}
