package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CallSheet is a generated call sheet for one shooting day. Sheet holds the
// full structured document as produced by the assistant; the backend treats
// it as an opaque JSON payload.
type CallSheet struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	ShootDate time.Time
	Sheet     json.RawMessage
	CreatedAt time.Time
}
