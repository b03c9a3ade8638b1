package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/slateroom/preprod-backend/internal/config"
)

// State tracks where a session is in its lifecycle. A session moves
// Idle -> Sending -> Streaming and ends in exactly one of Completed,
// Cancelled or Failed.
type State string

const (
	StateIdle      State = "idle"
	StateSending   State = "sending"
	StateStreaming State = "streaming"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Client talks to a chat-completion endpoint that streams deltas over SSE.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

func NewClient(cfg config.AssistantConfig, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.StreamTimeout},
		baseURL:    strings.TrimRight(cfg.StreamBaseURL, "/"),
		apiKey:     cfg.StreamAPIKey,
		model:      cfg.StreamModel,
		log:        log.With("component", "assistant_stream"),
	}
}

// NewSession starts a conversation with the given history. The history is
// copied, callers keep ownership of their slice.
func (c *Client) NewSession(history []Message) *Session {
	s := &Session{client: c, state: StateIdle}
	s.messages = append(s.messages, history...)
	return s
}

// Session is a single conversation. It is safe for one goroutine to drive
// Send while others observe State, Messages and ProvisionalJSON.
type Session struct {
	client *Client

	mu       sync.Mutex
	state    State
	messages []Message
	partial  strings.Builder
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the committed conversation. Partial text from
// an in-flight or cancelled stream is never included.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ProvisionalJSON attempts to pull a complete JSON object out of the text
// accumulated so far, letting callers render structured results before the
// stream finishes. Best effort, ok=false mid-object.
func (s *Session) ProvisionalJSON() (json.RawMessage, bool) {
	s.mu.Lock()
	text := s.partial.String()
	s.mu.Unlock()
	return ExtractJSON(text)
}

// chatRequest is the chat-completion wire request.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// chatChunk is one SSE data frame of a streamed completion.
type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Send appends the user message, streams the reply and commits it as an
// assistant message on completion. Each delta is passed to onDelta as it
// arrives; onDelta may be nil.
//
// Terminal handling is in-band: context cancellation ends the session in
// Cancelled with the partial text discarded, and provider failures end it
// in Failed with an assistant message prefixed "Error:" appended instead
// of an error return. Send only returns an error for misuse, such as
// reusing a finished session.
func (s *Session) Send(ctx context.Context, userContent string, onDelta func(string)) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("session already used (state %s)", state)
	}
	s.state = StateSending
	s.messages = append(s.messages, Message{Role: RoleUser, Content: userContent})
	body := chatRequest{Model: s.client.model, Messages: s.messages, Stream: true}
	s.mu.Unlock()

	text, err := s.stream(ctx, body, onDelta)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.state = StateCompleted
		s.messages = append(s.messages, Message{Role: RoleAssistant, Content: text})
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.state = StateCancelled
		s.partial.Reset()
	default:
		s.state = StateFailed
		s.partial.Reset()
		s.messages = append(s.messages, Message{
			Role:    RoleAssistant,
			Content: "Error: " + err.Error(),
		})
		s.client.log.ErrorContext(ctx, "assistant stream failed", "error", err)
	}
	return nil
}

func (s *Session) stream(ctx context.Context, body chatRequest, onDelta func(string)) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := s.client.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if s.client.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.client.apiKey)
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	s.mu.Lock()
	s.state = StateStreaming
	s.mu.Unlock()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			break
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Keep-alive comments and malformed frames are skipped.
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		s.mu.Lock()
		s.partial.WriteString(delta)
		s.mu.Unlock()
		if onDelta != nil {
			onDelta(delta)
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("read stream: %w", err)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	s.mu.Lock()
	text := s.partial.String()
	s.mu.Unlock()
	return text, nil
}
