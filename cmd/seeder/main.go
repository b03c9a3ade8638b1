// Command seeder populates the database with a complete demo production
// (project, script, scenes, elements, stripboard days, budget, contacts).
// It is intended to be run offline against a fresh database, not as part
// of the main server.
//
// Flags:
//
//	--project     name for the demo project (default "Night Ferry")
//	--shoot-date  first shoot day, YYYY-MM-DD (default: a week from today)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/slateroom/preprod-backend/internal/adapter/postgres"
	budgetitemrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/budgetitem"
	callsheetrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/callsheet"
	contactrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/contact"
	elementrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/element"
	projectrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/project"
	scenerepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/scene"
	scriptrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/script"
	stripdayrepo "github.com/slateroom/preprod-backend/internal/adapter/postgres/stripday"
	"github.com/slateroom/preprod-backend/internal/app"
	"github.com/slateroom/preprod-backend/internal/app/seeder"
	"github.com/slateroom/preprod-backend/internal/config"
	budgetsvc "github.com/slateroom/preprod-backend/internal/service/budget"
	contactsvc "github.com/slateroom/preprod-backend/internal/service/contact"
	productionsvc "github.com/slateroom/preprod-backend/internal/service/production"
	projectsvc "github.com/slateroom/preprod-backend/internal/service/project"
	schedulesvc "github.com/slateroom/preprod-backend/internal/service/schedule"
)

func main() {
	projectFlag := flag.String("project", "Night Ferry", "name for the demo project")
	shootDateFlag := flag.String("shoot-date", "", "first shoot day, YYYY-MM-DD")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	firstShootDate := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	if *shootDateFlag != "" {
		firstShootDate, err = time.Parse("2006-01-02", *shootDateFlag)
		if err != nil {
			logger.Error("parse shoot date", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	scenes := scenerepo.New(pool)
	pipeline := seeder.NewPipeline(
		logger,
		projectsvc.NewService(logger, projectrepo.New(pool)),
		productionsvc.NewService(logger, scenes, elementrepo.New(pool), scriptrepo.New(pool), callsheetrepo.New(pool)),
		schedulesvc.NewService(logger, stripdayrepo.New(pool), scenes, cfg.Schedule),
		budgetsvc.NewService(logger, budgetitemrepo.New(pool)),
		contactsvc.NewService(logger, contactrepo.New(pool), postgres.NewTxManager(pool)),
	)

	if err := pipeline.Run(ctx, *projectFlag, firstShootDate); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed successfully")
}
