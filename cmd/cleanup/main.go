// Command cleanup removes stale scene references from stripboard days.
// Deleting a scene does not rewrite the day orders that mention it, so
// orphaned references accumulate until this runs. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres"
	projectrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/project"
	scenerepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/scene"
	stripdayrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/stripday"
	"github.com/slateroom/preprod-backend/internal/app"
	"github.com/slateroom/preprod-backend/internal/config"
	schedulesvc "github.com/slateroom/preprod-backend/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	scheduleService := schedulesvc.NewService(logger, stripdayrepo.New(pool), scenerepo.New(pool), cfg.Schedule)

	projects, err := projectrepo.New(pool).List(ctx)
	if err != nil {
		logger.Error("list projects", slog.String("error", err.Error()))
		os.Exit(1)
	}

	removed := 0
	failed := false
	for _, p := range projects {
		n, err := scheduleService.PruneOrphanedScenes(ctx, p.ID)
		removed += n
		if err != nil {
			logger.Error("prune failed",
				slog.String("project_id", p.ID.String()),
				slog.String("error", err.Error()),
			)
			failed = true
		}
	}

	logger.Info("cleanup completed",
		slog.Int("projects", len(projects)),
		slog.Int("removed", removed),
	)
	if failed {
		os.Exit(1)
	}
}
