package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/SpiritForge_Go/internal/bootstrap"
	"github.com/osse101/SpiritForge_Go/internal/concurrency"
	"github.com/osse101/SpiritForge_Go/internal/config"
	"github.com/osse101/SpiritForge_Go/internal/crafting"
	"github.com/osse101/SpiritForge_Go/internal/database"
	"github.com/osse101/SpiritForge_Go/internal/database/postgres"
	"github.com/osse101/SpiritForge_Go/internal/eventlog"
	"github.com/osse101/SpiritForge_Go/internal/handler"
	"github.com/osse101/SpiritForge_Go/internal/scheduler"
	"github.com/osse101/SpiritForge_Go/internal/server"
	"github.com/osse101/SpiritForge_Go/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var errEmptyCatalog = errors.New("recipe catalog is empty")

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}

	codec, err := bootstrap.LoadCodec(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	craftingRepo := postgres.NewCraftingRepository(dbPool)
	if _, err := bootstrap.SyncCatalog(ctx, cfg, codec, craftingRepo); err != nil {
		dbPool.Close()
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	eventLogService := eventlog.NewService(postgres.NewEventLogRepository(dbPool))
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: eventLogService,
	}); err != nil {
		dbPool.Close()
		return err
	}

	craftingService := crafting.NewService(craftingRepo, codec, concurrency.NewLockManager(), publisher, crafting.Config{
		SessionTTL:       cfg.SessionTTL,
		SessionCacheSize: cfg.SessionCacheSize,
	})

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule("event_log_cleanup", cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(eventLogService, cfg.EventLogRetentionDays))

	readiness := map[string]handler.HealthChecker{
		"catalog": handler.HealthCheckFunc(func(ctx context.Context) error {
			recipes, err := craftingRepo.GetAllRecipes(ctx)
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				return errEmptyCatalog
			}
			return nil
		}),
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, craftingService, eventLogService, codec, readiness)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		ResilientPublisher: publisher,
		DBPool:             dbPool,
	})

	return runErr
}
