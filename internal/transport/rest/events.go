package rest

import (
	"log/slog"
	"net/http"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres"
)

// changeSource defines the minimal interface needed by EventsHandler.
type changeSource interface {
	Subscribe(buffer int) (<-chan postgres.Change, func())
}

// EventsHandler relays row-change notifications to clients over SSE, so a
// stripboard UI can reflect edits made by other clients as they land.
type EventsHandler struct {
	source changeSource
	log    *slog.Logger
}

func NewEventsHandler(source changeSource, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{source: source, log: logger.With("handler", "events")}
}

type changeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
}

// Stream handles GET /events. The stream stays open until the client
// disconnects; changes arrive in the order the database emitted them.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := sseStream(w)
	if !ok {
		return
	}

	changes, cancel := h.source.Subscribe(0)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-changes:
			if !open {
				return
			}
			sseEvent(w, flusher, changeEvent{
				Table: change.Table,
				Op:    change.Op,
				ID:    change.ID.String(),
			})
		}
	}
}
