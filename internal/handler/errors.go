package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Parameter error messages
	ErrMsgMissingPlayerID = "Missing player ID"
	ErrMsgInvalidLimit    = "Invalid limit parameter"
	ErrMsgInvalidTime     = "Invalid %s parameter, expected RFC3339"

	// Operation error messages
	ErrMsgGetEventsFailed = "Failed to retrieve events"
)

// Success messages for API responses
const (
	MsgDraftAbandoned = "Draft abandoned"
)

// Operation names used in logs
const (
	OpRegisterPlayer = "Register player"
	OpGetPlayer      = "Get player"
	OpAddExperience  = "Add experience"
	OpDamage         = "Damage player"
	OpHeal           = "Heal player"
	OpGetLedger      = "Get ledger"
	OpGetDraft       = "Get draft"
	OpStartDraft     = "Start draft"
	OpConfirmChoice  = "Confirm choice"
	OpAbandonDraft   = "Abandon draft"
	OpGetEvents      = "Get events"
)
