// Package breakdown runs the offline scene-breakdown batch: it feeds whole
// scripts to the Anthropic API and fans the results out to the scene and
// element stores, saving raw model output per script for resume.
package breakdown

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres/callsheet"
	"github.com/slateroom/preprod-backend/internal/adapter/postgres/element"
	"github.com/slateroom/preprod-backend/internal/adapter/postgres/scene"
	"github.com/slateroom/preprod-backend/internal/adapter/postgres/script"
	"github.com/slateroom/preprod-backend/internal/assistant"
	"github.com/slateroom/preprod-backend/internal/domain"
)

// Result summarizes one batch run.
type Result struct {
	Scripts   int
	Processed int
	Skipped   int
	Created   int
	Errors    []string
}

// Run breaks down every selected script. Scripts whose raw output already
// exists in OutputDir are skipped, so an interrupted run can resume.
func Run(ctx context.Context, cfg *Config, pool *pgxpool.Pool, log *slog.Logger) (*Result, error) {
	projectID, err := uuid.Parse(cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("parse project id: %w", err)
	}

	scripts, err := selectScripts(ctx, cfg, pool, projectID)
	if err != nil {
		return nil, err
	}
	if len(scripts) == 0 {
		log.Info("no scripts to break down", slog.String("project_id", cfg.ProjectID))
		return &Result{}, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	writer := assistant.NewWriter(log, scene.New(pool), element.New(pool), script.New(pool), callsheet.New(pool))

	result := &Result{Scripts: len(scripts)}
	for i := range scripts {
		s := &scripts[i]
		created, err := processScript(ctx, cfg, client, writer, s, log)
		switch {
		case err == errAlreadyDone:
			result.Skipped++
		case err != nil:
			// One bad script does not stop the batch.
			result.Errors = append(result.Errors, fmt.Sprintf("script %s: %v", s.ID, err))
			log.Error("script breakdown failed",
				slog.String("script_id", s.ID.String()),
				slog.String("error", err.Error()),
			)
		default:
			result.Processed++
			result.Created += created
		}
	}

	log.Info("batch breakdown complete",
		slog.Int("scripts", result.Scripts),
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("created", result.Created),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

var errAlreadyDone = fmt.Errorf("already processed")

func selectScripts(ctx context.Context, cfg *Config, pool *pgxpool.Pool, projectID uuid.UUID) ([]domain.Script, error) {
	repo := script.New(pool)

	if cfg.ScriptID != "" {
		scriptID, err := uuid.Parse(cfg.ScriptID)
		if err != nil {
			return nil, fmt.Errorf("parse script id: %w", err)
		}
		s, err := repo.GetByID(ctx, scriptID)
		if err != nil {
			return nil, fmt.Errorf("load script: %w", err)
		}
		return []domain.Script{*s}, nil
	}

	scripts, err := repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return scripts, nil
}

// processScript sends one script to the model and applies the breakdown.
// Returns the number of rows created.
func processScript(ctx context.Context, cfg *Config, client anthropic.Client, writer *assistant.Writer, s *domain.Script, log *slog.Logger) (int, error) {
	outPath := filepath.Join(cfg.OutputDir, s.ID.String()+".json")

	// Resume: skip if already done.
	if _, err := os.Stat(outPath); err == nil {
		return 0, errAlreadyDone
	}

	prompt := assistant.BreakdownPrompt(s.Body, cfg.MaxChars)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cfg.Model),
		MaxTokens: int64(cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return 0, fmt.Errorf("empty response")
	}

	raw, ok := assistant.ExtractJSON(msg.Content[0].Text)
	if !ok {
		return 0, fmt.Errorf("no JSON object in response")
	}
	if !assistant.ValidateResult(assistant.TaskBreakdown, raw) {
		return 0, fmt.Errorf("response missing required breakdown keys")
	}

	wr, err := writer.Write(ctx, assistant.TaskBreakdown, raw, assistant.WriteContext{
		ProjectID: s.ProjectID,
	})
	if err != nil {
		return 0, fmt.Errorf("apply breakdown: %w", err)
	}

	if err := saveOutput(outPath, raw, wr); err != nil {
		return len(wr.Created), err
	}

	log.Info("script broken down",
		slog.String("script_id", s.ID.String()),
		slog.Int("created", len(wr.Created)),
		slog.Int("item_errors", len(wr.Errors)),
	)
	return len(wr.Created), nil
}

// saveOutput persists the raw model JSON plus the write report, marking the
// script done for resume purposes.
func saveOutput(path string, raw json.RawMessage, wr *assistant.WriteResult) error {
	payload, err := json.MarshalIndent(map[string]any{
		"breakdown": raw,
		"write":     wr,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
