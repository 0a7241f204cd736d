package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LuBeneventi/lvlupreact-2/internal/config"
	"github.com/LuBeneventi/lvlupreact-2/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the assembled application.
type App struct {
	config     *config.Config
	logger     *zap.Logger
	db         *pgxpool.Pool
	router     *chi.Mux
	workerPool *worker.Pool
	server     *http.Server
}

// NewApp loads the configuration and wires the whole application.
func NewApp() (*App, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	deps := initDependencies(cfg, dbPool, logger)

	router := setupRouter(cfg, deps, deps.jwtManager, logger)

	server := createServer(cfg.RunAddress, router)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         dbPool,
		router:     router,
		workerPool: deps.workerPool,
		server:     server,
	}, nil
}

// Run starts the worker pool and the HTTP server, then performs a
// graceful shutdown once a termination signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.workerPool.Start(ctx)
	a.logger.Info("settlement worker pool started")

	if err := a.runServer(ctx); err != nil {
		return err
	}

	a.shutdown(cancel)

	return nil
}
