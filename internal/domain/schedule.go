package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// StripDay is one shooting day on the stripboard. SceneOrder is significant
// and may contain duplicate refs; the model does not prevent them.
type StripDay struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	ShootDate time.Time
	// SceneOrder holds scene refs in shooting order. Refs are not
	// foreign-key enforced against the scenes table.
	SceneOrder []uuid.UUID
	TargetMins int
	// TotalMins is a cache of SumDurations over SceneOrder at last
	// recompute. A scene-duration edit leaves it stale until the next
	// recompute; that window is accepted, not patched over.
	TotalMins int
	UpdatedAt time.Time
}

// IsOverTarget reports whether the day's scheduled total exceeds its target.
func (d StripDay) IsOverTarget() bool {
	return d.TotalMins > d.TargetMins
}

// OverageMins returns how many minutes over target the day is, 0 when at or
// under target.
func (d StripDay) OverageMins() int {
	if d.TotalMins <= d.TargetMins {
		return 0
	}
	return d.TotalMins - d.TargetMins
}

// SumDurations sums durations for the given order against a lookup.
// Refs missing from the lookup contribute zero. An empty order sums to 0.
func SumDurations(order []uuid.UUID, durations map[uuid.UUID]int) int {
	total := 0
	for _, id := range order {
		total += durations[id]
	}
	return total
}

// ReorderRefs returns a copy of order with the ref at from reinserted at to.
// The multiset of refs is unchanged. ok is false when either index is out
// of bounds.
func ReorderRefs(order []uuid.UUID, from, to int) (result []uuid.UUID, ok bool) {
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, false
	}

	result = slices.Clone(order)
	ref := result[from]
	result = slices.Delete(result, from, from+1)
	result = slices.Insert(result, to, ref)
	return result, true
}

// RemoveRefAt returns a copy of order without the ref at index, plus the
// removed ref. ok is false when index is out of bounds.
func RemoveRefAt(order []uuid.UUID, index int) (result []uuid.UUID, ref uuid.UUID, ok bool) {
	if index < 0 || index >= len(order) {
		return nil, uuid.Nil, false
	}
	result = slices.Clone(order)
	ref = result[index]
	return slices.Delete(result, index, index+1), ref, true
}

// InsertRefAt returns a copy of order with ref inserted at index. An index
// at or past the end appends.
func InsertRefAt(order []uuid.UUID, ref uuid.UUID, index int) []uuid.UUID {
	result := slices.Clone(order)
	if index < 0 {
		index = 0
	}
	if index >= len(result) {
		return append(result, ref)
	}
	return slices.Insert(result, index, ref)
}
