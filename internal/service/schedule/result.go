package schedule

import (
	"fmt"

	"github.com/slateroom/preprod-backend/internal/domain"
)

// MoveResult reports the outcome of a cross-day move. The two day updates
// are independent writes, so one side can persist while the other fails;
// callers must check both flags rather than assume all-or-nothing.
type MoveResult struct {
	Source *domain.StripDay
	Target *domain.StripDay

	SourceUpdated bool
	TargetUpdated bool
}

// MoveError names the side of a cross-day move that failed to persist.
type MoveError struct {
	Side string // "source" or "target"
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move: %s day update failed: %v", e.Side, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
