package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
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
	"github.com/slateroom/preprod-backend/internal/assistant"
	"github.com/slateroom/preprod-backend/internal/auth"
	"github.com/slateroom/preprod-backend/internal/config"
	budgetsvc "github.com/slateroom/preprod-backend/internal/service/budget"
	contactsvc "github.com/slateroom/preprod-backend/internal/service/contact"
	productionsvc "github.com/slateroom/preprod-backend/internal/service/production"
	projectsvc "github.com/slateroom/preprod-backend/internal/service/project"
	schedulesvc "github.com/slateroom/preprod-backend/internal/service/schedule"
	"github.com/slateroom/preprod-backend/internal/transport/middleware"
	"github.com/slateroom/preprod-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	projects := projectrepo.New(pool)
	days := stripdayrepo.New(pool)
	items := budgetitemrepo.New(pool)
	scenes := scenerepo.New(pool)
	elements := elementrepo.New(pool)
	scripts := scriptrepo.New(pool)
	sheets := callsheetrepo.New(pool)
	contacts := contactrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services.
	projectService := projectsvc.NewService(logger, projects)
	scheduleService := schedulesvc.NewService(logger, days, scenes, cfg.Schedule)
	budgetService := budgetsvc.NewService(logger, items)
	productionService := productionsvc.NewService(logger, scenes, elements, scripts, sheets)
	contactService := contactsvc.NewService(logger, contacts, txManager)

	assistantClient := assistant.NewClient(cfg.Assistant, logger)
	assistantWriter := assistant.NewWriter(logger, scenes, elements, scripts, sheets)
	assistantPipeline := assistant.NewPipeline(logger, assistantClient, assistantWriter, cfg.Assistant)

	// Realtime change feed over Postgres LISTEN/NOTIFY.
	watcher := postgres.NewWatcher(pool, logger, cfg.Schedule.WatchRetryInterval)
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("change watcher stopped", slog.String("error", err.Error()))
		}
	}()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTTL)

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
	}

	handler := NewRouter(RouterDeps{
		Config:     cfg,
		Logger:     logger,
		DB:         pool,
		Projects:   projectService,
		Schedule:   scheduleService,
		Budget:     budgetService,
		Production: productionService,
		Contacts:   contactService,
		Assistant:  assistantPipeline,
		Watcher:    watcher,
		JWT:        jwtManager,
		Limiter:    limiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// RouterDeps carries everything NewRouter needs to build the route table.
type RouterDeps struct {
	Config     *config.Config
	Logger     *slog.Logger
	DB         dbPinger
	Projects   *projectsvc.Service
	Schedule   *schedulesvc.Service
	Budget     *budgetsvc.Service
	Production *productionsvc.Service
	Contacts   *contactsvc.Service
	Assistant  *assistant.Pipeline
	Watcher    *postgres.Watcher
	JWT        *auth.JWTManager
	// Limiter is optional; nil disables per-IP rate limiting.
	Limiter *middleware.RateLimiter
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the full route table. Health endpoints bypass auth;
// everything else goes through the shared middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(d.DB, BuildVersion())
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	api := http.NewServeMux()

	projectHandler := rest.NewProjectHandler(d.Projects, d.Logger)
	api.HandleFunc("POST /projects", projectHandler.Create)
	api.HandleFunc("GET /projects", projectHandler.List)
	api.HandleFunc("GET /projects/{projectID}", projectHandler.Get)
	api.HandleFunc("PATCH /projects/{projectID}", projectHandler.Rename)
	api.HandleFunc("DELETE /projects/{projectID}", projectHandler.Delete)

	scheduleHandler := rest.NewScheduleHandler(d.Schedule, d.Logger)
	api.HandleFunc("POST /projects/{projectID}/days", scheduleHandler.Create)
	api.HandleFunc("GET /projects/{projectID}/days", scheduleHandler.List)
	api.HandleFunc("GET /days/{dayID}", scheduleHandler.Get)
	api.HandleFunc("POST /days/{dayID}/reorder", scheduleHandler.Reorder)
	api.HandleFunc("POST /days/move", scheduleHandler.Move)
	api.HandleFunc("PATCH /days/{dayID}/target", scheduleHandler.SetTarget)
	api.HandleFunc("POST /days/{dayID}/refresh-total", scheduleHandler.RefreshTotal)
	api.HandleFunc("DELETE /days/{dayID}", scheduleHandler.Delete)

	budgetHandler := rest.NewBudgetHandler(d.Budget, d.Logger)
	api.HandleFunc("POST /budget/items", budgetHandler.CreateItem)
	api.HandleFunc("GET /budget/items/{itemID}", budgetHandler.GetItem)
	api.HandleFunc("PATCH /budget/items/{itemID}", budgetHandler.UpdateItem)
	api.HandleFunc("DELETE /budget/items/{itemID}", budgetHandler.DeleteItem)
	api.HandleFunc("GET /budget/{scope}/{refID}/items", budgetHandler.ListByScope)
	api.HandleFunc("GET /budget/{scope}/{refID}/totals", budgetHandler.ScopeTotals)
	api.HandleFunc("GET /projects/{projectID}/budget/items", budgetHandler.ListByProject)
	api.HandleFunc("GET /projects/{projectID}/budget/totals", budgetHandler.ProjectTotals)

	productionHandler := rest.NewProductionHandler(d.Production, d.Logger)
	api.HandleFunc("POST /projects/{projectID}/scenes", productionHandler.CreateScene)
	api.HandleFunc("GET /projects/{projectID}/scenes", productionHandler.ListScenes)
	api.HandleFunc("GET /scenes/{sceneID}", productionHandler.GetScene)
	api.HandleFunc("PATCH /scenes/{sceneID}", productionHandler.UpdateScene)
	api.HandleFunc("DELETE /scenes/{sceneID}", productionHandler.DeleteScene)
	api.HandleFunc("POST /projects/{projectID}/elements", productionHandler.CreateElement)
	api.HandleFunc("GET /projects/{projectID}/elements", productionHandler.ListElements)
	api.HandleFunc("GET /elements/{elementID}", productionHandler.GetElement)
	api.HandleFunc("DELETE /elements/{elementID}", productionHandler.DeleteElement)
	api.HandleFunc("POST /projects/{projectID}/scripts", productionHandler.CreateScript)
	api.HandleFunc("GET /projects/{projectID}/scripts", productionHandler.ListScripts)
	api.HandleFunc("GET /scripts/{scriptID}", productionHandler.GetScript)
	api.HandleFunc("PUT /scripts/{scriptID}", productionHandler.UpdateScript)
	api.HandleFunc("DELETE /scripts/{scriptID}", productionHandler.DeleteScript)
	api.HandleFunc("POST /projects/{projectID}/callsheets", productionHandler.CreateCallSheet)
	api.HandleFunc("GET /projects/{projectID}/callsheets", productionHandler.ListCallSheets)
	api.HandleFunc("GET /callsheets/{sheetID}", productionHandler.GetCallSheet)
	api.HandleFunc("DELETE /callsheets/{sheetID}", productionHandler.DeleteCallSheet)

	contactHandler := rest.NewContactHandler(d.Contacts, d.Logger)
	api.HandleFunc("POST /projects/{projectID}/contacts", contactHandler.Create)
	api.HandleFunc("GET /projects/{projectID}/contacts", contactHandler.List)
	api.HandleFunc("POST /projects/{projectID}/contacts/import", contactHandler.Import)
	api.HandleFunc("DELETE /contacts/{contactID}", contactHandler.Delete)

	assistantHandler := rest.NewAssistantHandler(d.Assistant, d.Logger)
	api.HandleFunc("POST /assistant/quick-action", assistantHandler.QuickAction)
	api.HandleFunc("POST /assistant/chat", assistantHandler.Chat)

	eventsHandler := rest.NewEventsHandler(d.Watcher, d.Logger)
	api.HandleFunc("GET /events", eventsHandler.Stream)

	chain := []middleware.Middleware{
		middleware.Recovery(d.Logger),
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.CORS(d.Config.CORS),
	}
	if d.Limiter != nil {
		chain = append(chain, d.Limiter.Limit(d.Config.Server.RateLimitPerMinute))
	}
	chain = append(chain, middleware.Auth(d.JWT))
	apiHandler := middleware.Chain(chain...)(api)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiHandler))

	return mux
}
