package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/UpgradeDraft_Go/internal/bootstrap"
	"github.com/osse101/UpgradeDraft_Go/internal/config"
	"github.com/osse101/UpgradeDraft_Go/internal/draft"
	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
	"github.com/osse101/UpgradeDraft_Go/internal/handler"
	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
	"github.com/osse101/UpgradeDraft_Go/internal/scheduler"
	"github.com/osse101/UpgradeDraft_Go/internal/server"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
	"github.com/osse101/UpgradeDraft_Go/internal/telemetry"
	"github.com/osse101/UpgradeDraft_Go/internal/worker"

	_ "github.com/osse101/UpgradeDraft_Go/docs"
)

const shutdownTimeout = 15 * time.Second

// @title Upgrade Draft API
// @version 1.0
// @description Level-up upgrade drafts: offers, confirmation and purchase ledger.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Version == "dev" && handler.Version != "dev" {
		cfg.Version = handler.Version
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx := context.Background()

	tracingShutdown, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Endpoint:    cfg.OTELEndpoint,
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		return err
	}

	cat, err := bootstrap.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	repo, dbPool, err := bootstrap.OpenEventStore(ctx, cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	eventlogService := eventlog.NewService(repo, eventlog.WithArchiver(eventlog.NewZstdArchiver(cfg.EventArchiveDir)))

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventlogService,
		Hub:             hub,
	}); err != nil {
		dbPool.Close()
		return err
	}

	var rng draft.RandomSource
	if cfg.RandomSeed != 0 {
		rng = draft.NewSeededSource(cfg.RandomSeed)
	}

	levelupService := levelup.NewService(cat, publisher, levelup.Config{
		Player: player.Config{
			StartingBalance: cfg.StartingBalance,
			MaxHealth:       cfg.MaxHealth,
			ThresholdBase:   cfg.ThresholdBase,
			ThresholdGrowth: cfg.ThresholdGrowth,
		},
		MaxPlayers: cfg.MaxPlayers,
		PlayerTTL:  cfg.PlayerIdleTTL,
		Random:     rng,
	})

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule("eventlog_cleanup", cfg.EventCleanupInterval, eventlog.NewCleanupJob(eventlogService, cfg.EventRetention), true)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		CatalogVersion: cat.Version(),
		DBPool:         dbPool,
		Levelup:        levelupService,
		Eventlog:       eventlogService,
		Hub:            hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		Scheduler:          sched,
		WorkerPool:         pool,
		LevelupService:     levelupService,
		ResilientPublisher: publisher,
		DBPool:             dbPool,
		Tracing:            tracingShutdown,
	})

	return runErr
}
