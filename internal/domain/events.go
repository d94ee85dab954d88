package domain

// Event types published on the bus.
// These are the single source of truth for event type strings; the event,
// eventlog and sse packages all reference them.
const (
	// EventTypeThresholdCrossed is published once per experience threshold crossed
	EventTypeThresholdCrossed = "level.threshold_crossed"

	// EventTypeDraftStarted is published when a draft enters AwaitingChoice with its offers
	EventTypeDraftStarted = "draft.started"

	// EventTypeDraftResolved is published after a confirmed choice has been applied
	EventTypeDraftResolved = "draft.resolved"

	// EventTypeDraftAbandoned is published when a session is reset without a purchase
	EventTypeDraftAbandoned = "draft.abandoned"

	// EventTypeDraftRejected is published when a start or confirm request is refused
	EventTypeDraftRejected = "draft.rejected"
)

// AllEventTypes lists every event type the draft engine publishes
var AllEventTypes = []string{
	EventTypeThresholdCrossed,
	EventTypeDraftStarted,
	EventTypeDraftResolved,
	EventTypeDraftAbandoned,
	EventTypeDraftRejected,
}
