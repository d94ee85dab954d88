package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/UpgradeDraft_Go/internal/database"
	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/scheduler"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
	"github.com/osse101/UpgradeDraft_Go/internal/worker"
)

type stoppableServer interface {
	Stop(ctx context.Context) error
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             stoppableServer
	Hub                *sse.Hub
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	LevelupService     shutdownableService
	ResilientPublisher *event.ResilientPublisher
	DBPool             database.Pool
	Tracing            func(context.Context) error
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server and stream clients (no new requests)
//  2. scheduler and workers (no new background jobs)
//  3. level-up service (in-flight drafts)
//  4. event publisher (flush retries before the store closes)
//  5. database and tracing
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.LevelupService != nil {
		shutdownService(ctx, ServiceNameLevelup, c.LevelupService)
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}
	if c.Tracing != nil {
		if err := c.Tracing(ctx); err != nil {
			slog.Error(LogMsgTracingShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
