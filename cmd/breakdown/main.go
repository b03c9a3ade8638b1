// Command breakdown runs the offline scene-breakdown batch for a project.
// It sends each script body to the Anthropic API, extracts the returned
// breakdown JSON, and creates the scene and element rows it describes.
// Raw model output is saved to breakdown-output/<script-id>.json so an
// interrupted run can resume without repeating API calls.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres"
	"github.com/slateroom/preprod-backend/internal/app/breakdown"
	"github.com/slateroom/preprod-backend/internal/config"
)

func main() {
	breakdownConfigPath := flag.String("breakdown-config", "", "path to breakdown YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := breakdown.LoadConfig(*breakdownConfigPath)
	if err != nil {
		logger.Error("load breakdown config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appCfg, err := config.Load()
	if err != nil {
		logger.Error("load app config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	result, err := breakdown.Run(ctx, cfg, pool, logger)
	if err != nil {
		logger.Error("batch breakdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("done",
		slog.Int("scripts", result.Scripts),
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("created", result.Created),
		slog.Int("errors", len(result.Errors)),
	)
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
