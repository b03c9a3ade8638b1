package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slateroom/preprod-backend/internal/assistant"
	"github.com/slateroom/preprod-backend/internal/domain"

	"github.com/google/uuid"
)

// assistantPipeline defines the minimal interface needed by AssistantHandler.
type assistantPipeline interface {
	QuickAction(ctx context.Context, in assistant.QuickActionInput, onDelta func(string)) (*assistant.QuickActionResult, error)
	Chat(ctx context.Context, history []assistant.Message, userContent string, onDelta func(string)) (assistant.State, []assistant.Message, error)
}

// AssistantHandler serves the AI assistant endpoints. Both endpoints relay
// the upstream token stream to the client as SSE and close with a final
// result frame followed by the [DONE] marker.
type AssistantHandler struct {
	pipeline assistantPipeline
	log      *slog.Logger
}

func NewAssistantHandler(pipeline assistantPipeline, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{pipeline: pipeline, log: logger.With("handler", "assistant")}
}

type quickActionRequest struct {
	Task      string              `json:"task"`
	ProjectID uuid.UUID           `json:"projectId"`
	ScriptID  uuid.UUID           `json:"scriptId"`
	ShootDate string              `json:"shootDate"`
	Source    string              `json:"source"`
	Messages  []assistant.Message `json:"messages"`
}

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

// sseStream prepares the response for server-sent events. ok is false when
// the client connection cannot stream.
func sseStream(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return flusher, true
}

func sseEvent(w http.ResponseWriter, flusher http.Flusher, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

func sseDone(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// QuickAction handles POST /assistant/quick-action.
func (h *AssistantHandler) QuickAction(w http.ResponseWriter, r *http.Request) {
	var req quickActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := assistant.QuickActionInput{
		Task:      assistant.Task(req.Task),
		ProjectID: req.ProjectID,
		ScriptID:  req.ScriptID,
		Source:    req.Source,
		History:   req.Messages,
	}
	if req.ShootDate != "" {
		d, err := time.Parse("2006-01-02", req.ShootDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "shootDate must be YYYY-MM-DD")
			return
		}
		in.ShootDate = d
	}
	// Input problems surface as a plain 400 before any SSE bytes go out.
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := sseStream(w)
	if !ok {
		return
	}

	result, err := h.pipeline.QuickAction(r.Context(), in, func(delta string) {
		sseEvent(w, flusher, map[string]string{"delta": delta})
	})
	if err != nil {
		sseEvent(w, flusher, map[string]string{"error": errorMessage(err)})
		sseDone(w, flusher)
		return
	}

	sseEvent(w, flusher, map[string]any{"result": result})
	sseDone(w, flusher)
}

// Chat handles POST /assistant/chat. The last message in the request is
// the new user turn; everything before it is history.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Role != assistant.RoleUser {
		writeError(w, http.StatusBadRequest, "last message must be a user turn")
		return
	}

	history := req.Messages[:len(req.Messages)-1]
	content := req.Messages[len(req.Messages)-1].Content

	flusher, ok := sseStream(w)
	if !ok {
		return
	}

	state, msgs, err := h.pipeline.Chat(r.Context(), history, content, func(delta string) {
		sseEvent(w, flusher, map[string]string{"delta": delta})
	})
	if err != nil {
		sseEvent(w, flusher, map[string]string{"error": errorMessage(err)})
		sseDone(w, flusher)
		return
	}

	sseEvent(w, flusher, map[string]any{"state": state, "messages": msgs})
	sseDone(w, flusher)
}

// errorMessage keeps validation detail but hides internals.
func errorMessage(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return err.Error()
	}
	return "internal server error"
}
