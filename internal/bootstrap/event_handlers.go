package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
	"github.com/osse101/UpgradeDraft_Go/internal/metrics"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Hub             *sse.Hub
}

// RegisterEventHandlers sets up every bus subscriber:
// the metrics collector, the audit log, and the SSE/WebSocket hub bridge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgStreamBridgeInitialized)
	}

	return nil
}
