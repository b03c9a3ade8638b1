package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/slateroom/preprod-backend/internal/config"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Pipeline drives one quick action end to end: prompt construction,
// streaming, JSON extraction, shape validation and the fan-out write.
type Pipeline struct {
	log    *slog.Logger
	client *Client
	writer *Writer
	limits PromptLimits
}

func NewPipeline(log *slog.Logger, client *Client, writer *Writer, cfg config.AssistantConfig) *Pipeline {
	return &Pipeline{
		log:    log.With("service", "assistant"),
		client: client,
		writer: writer,
		limits: PromptLimits{
			FormatScript: cfg.MaxCharsFormat,
			Breakdown:    cfg.MaxCharsBreakdown,
			Shotlist:     cfg.MaxCharsShotlist,
			Callsheet:    cfg.MaxCharsCallsheet,
		},
	}
}

// QuickActionInput describes one quick-action run. Source is the script
// excerpt or day brief the prompt is built from; History carries prior
// conversation turns.
type QuickActionInput struct {
	Task      Task
	ProjectID uuid.UUID
	ScriptID  uuid.UUID
	ShootDate time.Time
	Source    string
	History   []Message
}

// Validate checks all fields and collects all errors.
func (i *QuickActionInput) Validate() error {
	var errs []domain.FieldError

	if !ValidTask(i.Task) {
		errs = append(errs, domain.FieldError{Field: "task", Message: "unknown task"})
	}
	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	if i.Source == "" {
		errs = append(errs, domain.FieldError{Field: "source", Message: "required"})
	}
	if i.Task == TaskFormatScript && i.ScriptID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "script_id", Message: "required for script formatting"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// QuickActionResult reports a finished run. Write is nil when the stream
// was cancelled, failed in-band, or produced no validly shaped JSON.
type QuickActionResult struct {
	State    State        `json:"state"`
	Messages []Message    `json:"messages"`
	Write    *WriteResult `json:"write,omitempty"`
}

// QuickAction runs one task. Streaming deltas are forwarded to onDelta as
// they arrive; onDelta may be nil. Stream failures and cancellation are
// reflected in the result state rather than returned as errors.
func (p *Pipeline) QuickAction(ctx context.Context, in QuickActionInput, onDelta func(string)) (*QuickActionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prompt, err := PromptFor(in.Task, in.Source, p.limits)
	if err != nil {
		return nil, err
	}

	sess := p.client.NewSession(in.History)
	if err := sess.Send(ctx, prompt, onDelta); err != nil {
		return nil, err
	}

	res := &QuickActionResult{State: sess.State(), Messages: sess.Messages()}
	if res.State != StateCompleted {
		return res, nil
	}

	reply := res.Messages[len(res.Messages)-1].Content
	raw, ok := ExtractJSON(reply)
	if !ok {
		p.log.WarnContext(ctx, "no JSON object in assistant reply", "task", in.Task, "project_id", in.ProjectID)
		return res, nil
	}
	if !ValidateResult(in.Task, raw) {
		p.log.WarnContext(ctx, "assistant reply failed shape validation", "task", in.Task, "project_id", in.ProjectID)
		return res, nil
	}

	wr, err := p.writer.Write(ctx, in.Task, raw, WriteContext{
		ProjectID: in.ProjectID,
		ScriptID:  in.ScriptID,
		ShootDate: in.ShootDate,
	})
	if err != nil {
		return nil, err
	}
	res.Write = wr
	return res, nil
}

// Chat runs a free-form conversation turn outside any quick action. The
// returned messages include the new assistant reply, or the in-band error
// message if the stream failed.
func (p *Pipeline) Chat(ctx context.Context, history []Message, userContent string, onDelta func(string)) (State, []Message, error) {
	if userContent == "" {
		return StateIdle, nil, domain.NewValidationError("content", "required")
	}

	sess := p.client.NewSession(history)
	if err := sess.Send(ctx, userContent, onDelta); err != nil {
		return StateIdle, nil, err
	}
	return sess.State(), sess.Messages(), nil
}
