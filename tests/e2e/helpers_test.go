//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres"
	budgetitemrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/budgetitem"
	callsheetrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/callsheet"
	contactrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/contact"
	elementrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/element"
	projectrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/project"
	scenerepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/scene"
	scriptrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/script"
	stripdayrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/stripday"
	"github.com/slateroom/preprod-backend/internal/adapter/postgres/testhelper"
	"github.com/slateroom/preprod-backend/internal/app"
	"github.com/slateroom/preprod-backend/internal/assistant"
	authpkg "github.com/slateroom/preprod-backend/internal/auth"
	"github.com/slateroom/preprod-backend/internal/config"
	budgetsvc "github.com/slateroom/preprod-backend/internal/service/budget"
	contactsvc "github.com/slateroom/preprod-backend/internal/service/contact"
	productionsvc "github.com/slateroom/preprod-backend/internal/service/production"
	projectsvc "github.com/slateroom/preprod-backend/internal/service/project"
	schedulesvc "github.com/slateroom/preprod-backend/internal/service/schedule"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). assistantURL points the
// streaming client at a stub; pass "" when the test never touches the
// assistant endpoints.
func setupTestServer(t *testing.T, assistantURL string) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	projects := projectrepo.New(pool)
	days := stripdayrepo.New(pool)
	items := budgetitemrepo.New(pool)
	scenes := scenerepo.New(pool)
	elements := elementrepo.New(pool)
	scripts := scriptrepo.New(pool)
	sheets := callsheetrepo.New(pool)
	contacts := contactrepo.New(pool)

	cfg := &config.Config{
		Schedule: config.ScheduleConfig{
			DefaultTargetMins:  480,
			WatchRetryInterval: time.Second,
		},
		Assistant: config.AssistantConfig{
			StreamBaseURL:     assistantURL,
			StreamAPIKey:      "test-key",
			StreamModel:       "test-model",
			StreamTimeout:     10 * time.Second,
			MaxCharsFormat:    2000,
			MaxCharsBreakdown: 1500,
			MaxCharsShotlist:  1500,
			MaxCharsCallsheet: 1000,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	watcher := postgres.NewWatcher(pool, logger, cfg.Schedule.WatchRetryInterval)
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	t.Cleanup(cancelWatch)
	go func() { _ = watcher.Run(watchCtx) }()

	assistantClient := assistant.NewClient(cfg.Assistant, logger)
	assistantWriter := assistant.NewWriter(logger, scenes, elements, scripts, sheets)

	handler := app.NewRouter(app.RouterDeps{
		Config:     cfg,
		Logger:     logger,
		DB:         pool,
		Projects:   projectsvc.NewService(logger, projects),
		Schedule:   schedulesvc.NewService(logger, days, scenes, cfg.Schedule),
		Budget:     budgetsvc.NewService(logger, items),
		Production: productionsvc.NewService(logger, scenes, elements, scripts, sheets),
		Contacts:   contactsvc.NewService(logger, contacts, txm),
		Assistant:  assistant.NewPipeline(logger, assistantClient, assistantWriter, cfg.Assistant),
		Watcher:    watcher,
		JWT:        jwtMgr,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// doJSON issues a request with a JSON body (may be nil) against /api/v1 and
// decodes the JSON response into a generic map. DELETE responses with no
// body return nil.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+"/api/v1"+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// doJSONList is doJSON for endpoints that return a top-level JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+"/api/v1"+path, nil)
	require.NoError(t, err)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))

	out := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		var m map[string]any
		require.NoError(t, json.Unmarshal(r, &m))
		out = append(out, m)
	}
	return resp.StatusCode, out
}

// postRaw posts a non-JSON body (CSV import) against /api/v1.
func (ts *testServer) postRaw(t *testing.T, path, contentType, body string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Post(ts.URL+"/api/v1"+path, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// createProject creates a project and returns its id.
func (ts *testServer) createProject(t *testing.T, name string) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/projects", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, status, "create project: %v", body)
	id, ok := body["id"].(string)
	require.True(t, ok, "expected project id, got %v", body)
	return id
}

// createScene creates a scene and returns its id.
func (ts *testServer) createScene(t *testing.T, projectID, slugline string, durationMins int) string {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, fmt.Sprintf("/projects/%s/scenes", projectID), map[string]any{
		"slugline":     slugline,
		"location":     "Stage 2",
		"durationMins": durationMins,
		"priority":     "medium",
	})
	require.Equal(t, http.StatusCreated, status, "create scene: %v", body)
	id, ok := body["id"].(string)
	require.True(t, ok, "expected scene id, got %v", body)
	return id
}
