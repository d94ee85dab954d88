package postgres

// Query settings
const (
	// selectEventColumns lists the events columns in scan order
	selectEventColumns = "id, event_type, player_id, payload, metadata, created_at"
)

// Error Messages
const (
	ErrMsgFailedToMarshalPayload  = "failed to marshal event payload"
	ErrMsgFailedToMarshalMetadata = "failed to marshal event metadata"
	ErrMsgFailedToScanEvent       = "failed to scan event"
)
