// Package server initializes and runs the application: it loads key
// material, opens the database, applies migrations and serves the REST API
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/auth"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/httpapi"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
	"github.com/clipforge/clipforge/internal/server/services"
	"github.com/clipforge/clipforge/internal/server/storage"
	"github.com/clipforge/clipforge/internal/server/tasks"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger

	db     *sql.DB
	router *gin.Engine
	worker *tasks.ExportWorker
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	keys, err := auth.LoadKeyStore(cfg)
	if err != nil {
		// asymmetric tokens cannot be verified without keys; only
		// development may limp along (HS256 fallback still works)
		if cfg.IsProduction() {
			return nil, fmt.Errorf("key store init error: %w", err)
		}
		logger.Warn(ctx, "running without signing keys", "error", err)
		keys = auth.NewKeyStore()
	}

	codec, err := auth.NewTokenCodec(cfg, keys)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	authSvc := services.NewAuthService(db, rm, cfg, hasher, codec, logger)
	projectSvc := services.NewProjectService(db, rm, cfg)
	videoSvc := services.NewVideoService(db, rm, cfg, store, logger)
	audioSvc := services.NewAudioService(db, rm, cfg, store, logger)
	planSvc := services.NewCuttingPlanService(db, rm, cfg)
	exportSvc := services.NewExportJobService(db, rm, cfg)

	router := httpapi.NewRouter(cfg, httpapi.Services{
		Auth:         authSvc,
		Projects:     projectSvc,
		Videos:       videoSvc,
		Audios:       audioSvc,
		CuttingPlans: planSvc,
		ExportJobs:   exportSvc,
	})

	worker := tasks.NewExportWorker(db, rm, tasks.StubRenderer{}, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
		worker: worker,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "starting app", "env", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.worker.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
