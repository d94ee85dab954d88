package eventlog

import "time"

// JSON payload field keys
const (
	PayloadKeyPlayerID = "player_id"
)

// Cleanup defaults
const (
	DefaultRetention       = 30 * 24 * time.Hour
	DefaultCleanupBatch    = 500
	DefaultQueryLimit      = 100
	MaxQueryLimit          = 1000
	ArchiveFilePrefix      = "events"
	ArchiveHourLayout      = "2006-01-02-15"
	ArchiveFileExtension   = ".jsonl.zst"
	ArchiveDirPermissions  = 0o755
	ArchiveFilePermissions = 0o644
	ArchiveBufferSize      = 128 * 1024
)

// Log messages - service events
const (
	LogMsgEventPayloadUnreadable = "Event payload could not be converted, skipping log"
	LogMsgFailedToLogEvent       = "Failed to log event to database"
	LogMsgEventLogged            = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
	LogMsgEventsArchived      = "Archived events before cleanup"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldPlayerID     = "player_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
	LogFieldArchived     = "archived"
)
