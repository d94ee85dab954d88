package bootstrap

import "time"

// =============================================================================
// File System
// =============================================================================

const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// =============================================================================
// Logger Setup
// =============================================================================

const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is how many old log files survive a restart
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting upgrade draft service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Storage & Catalog
// =============================================================================

const (
	LogMsgEventStoreOpened = "Event store opened"
	LogMsgCatalogLoaded    = "Upgrade catalog loaded"

	ErrMsgFailedOpenEventStore = "failed to open event store"
	ErrMsgFailedMigrate        = "failed to migrate event store"
	ErrMsgFailedLoadCatalog    = "failed to load upgrade catalog"
)

// =============================================================================
// Event Handlers
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgStreamBridgeInitialized    = "Stream bridge initialized"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgTracingShutdownFailed      = "Tracing shutdown failed"
	LogMsgServiceShutdownFailed      = " service shutdown failed"

	ServiceNameLevelup = "levelup"
)
