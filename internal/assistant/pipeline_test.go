package assistant

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateroom/preprod-backend/internal/config"
	"github.com/slateroom/preprod-backend/internal/domain"
)

func newTestPipeline(t *testing.T, handler http.HandlerFunc) (*Pipeline, *testDeps) {
	t.Helper()
	client := testClient(t, handler)
	writer, deps := newTestWriter()
	cfg := config.AssistantConfig{
		MaxCharsFormat:    2000,
		MaxCharsBreakdown: 1500,
		MaxCharsShotlist:  1500,
		MaxCharsCallsheet: 1000,
	}
	return NewPipeline(discardLogger(), client, writer, cfg), deps
}

// ============================================================================
// 1. Input Validation Tests
// ============================================================================

func TestQuickActionInput_Validate(t *testing.T) {
	t.Parallel()

	valid := QuickActionInput{
		Task:      TaskBreakdown,
		ProjectID: uuid.New(),
		Source:    "INT. GARAGE - DAY",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*QuickActionInput)
	}{
		{"unknown task", func(i *QuickActionInput) { i.Task = "summarize" }},
		{"missing project", func(i *QuickActionInput) { i.ProjectID = uuid.Nil }},
		{"missing source", func(i *QuickActionInput) { i.Source = "" }},
		{"format script without script id", func(i *QuickActionInput) { i.Task = TaskFormatScript }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)

			err := in.Validate()
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ============================================================================
// 2. End-to-End Quick Action Tests
// ============================================================================

func TestPipeline_QuickAction_CallsheetEndToEnd(t *testing.T) {
	t.Parallel()

	reply := `{"production": {"title": "Dawn", "date": "2026-09-14"}, "schedule": {}, "cast": ["MARA"], "crew": ["gaffer"]}`
	p, deps := newTestPipeline(t, sseHandler(
		deltaFrame("Here is the call sheet:\n"),
		deltaFrame(reply),
	))

	var got *domain.CallSheet
	deps.sheets.CreateFunc = func(_ context.Context, cs *domain.CallSheet) (*domain.CallSheet, error) {
		got = cs
		out := *cs
		out.ID = uuid.New()
		return &out, nil
	}

	res, err := p.QuickAction(context.Background(), QuickActionInput{
		Task:      TaskCallsheet,
		ProjectID: uuid.New(),
		Source:    "Day 3: pier scenes, dawn call.",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, res.State)
	require.NotNil(t, res.Write)
	assert.True(t, res.Write.Success)
	require.NotNil(t, got)
	assert.JSONEq(t, reply, string(got.Sheet))

	// The prompt went out as the user turn, the reply came back committed.
	require.Len(t, res.Messages, 2)
	assert.Contains(t, res.Messages[0].Content, "Day 3: pier scenes")
	assert.Contains(t, res.Messages[1].Content, "Dawn")
}

func TestPipeline_QuickAction_StreamFailureNoWrite(t *testing.T) {
	t.Parallel()

	p, deps := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	deps.sheets.CreateFunc = func(context.Context, *domain.CallSheet) (*domain.CallSheet, error) {
		t.Fatal("no write expected after stream failure")
		return nil, nil
	}

	res, err := p.QuickAction(context.Background(), QuickActionInput{
		Task:      TaskCallsheet,
		ProjectID: uuid.New(),
		Source:    "Day 3.",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Nil(t, res.Write)

	last := res.Messages[len(res.Messages)-1]
	assert.True(t, strings.HasPrefix(last.Content, "Error:"))
}

func TestPipeline_QuickAction_InvalidShapeNoWrite(t *testing.T) {
	t.Parallel()

	// A complete stream whose JSON is missing required keys completes the
	// conversation but writes nothing.
	p, deps := newTestPipeline(t, sseHandler(deltaFrame(`{"production": {}}`)))
	deps.sheets.CreateFunc = func(context.Context, *domain.CallSheet) (*domain.CallSheet, error) {
		t.Fatal("no write expected for invalid shape")
		return nil, nil
	}

	res, err := p.QuickAction(context.Background(), QuickActionInput{
		Task:      TaskCallsheet,
		ProjectID: uuid.New(),
		Source:    "Day 3.",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Nil(t, res.Write)
}

func TestPipeline_QuickAction_NoJSONInReply(t *testing.T) {
	t.Parallel()

	p, _ := newTestPipeline(t, sseHandler(deltaFrame("I could not produce a call sheet.")))

	res, err := p.QuickAction(context.Background(), QuickActionInput{
		Task:      TaskCallsheet,
		ProjectID: uuid.New(),
		Source:    "Day 3.",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Nil(t, res.Write)
}

func TestPipeline_QuickAction_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	p, _ := newTestPipeline(t, sseHandler())

	_, err := p.QuickAction(context.Background(), QuickActionInput{Task: "summarize"}, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ============================================================================
// 3. Chat Tests
// ============================================================================

func TestPipeline_Chat(t *testing.T) {
	t.Parallel()

	p, _ := newTestPipeline(t, sseHandler(deltaFrame("A stripboard orders scenes into shooting days.")))

	state, msgs, err := p.Chat(context.Background(), nil, "What is a stripboard?", nil)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
}

func TestPipeline_Chat_EmptyContent(t *testing.T) {
	t.Parallel()

	p, _ := newTestPipeline(t, sseHandler())

	_, _, err := p.Chat(context.Background(), nil, "", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
