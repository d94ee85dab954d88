package eventlog

import (
	"context"
	"time"
)

// Event represents a logged event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	PlayerID  *string                `json:"player_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	PlayerID  *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, eventType string, playerID *string, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events based on filter criteria, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// GetEventsByPlayer retrieves events for a specific player
	GetEventsByPlayer(ctx context.Context, playerID string, limit int) ([]Event, error)

	// GetEventsByType retrieves events of a specific type
	GetEventsByType(ctx context.Context, eventType string, limit int) ([]Event, error)

	// EventsBefore returns up to limit events created before cutoff, oldest first
	EventsBefore(ctx context.Context, cutoff time.Time, limit int) ([]Event, error)

	// CleanupOldEvents deletes events created before cutoff with id <= maxID
	CleanupOldEvents(ctx context.Context, cutoff time.Time, maxID int64) (int64, error)
}
