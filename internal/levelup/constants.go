package levelup

import "time"

// TracerName identifies spans emitted by the level-up service
const TracerName = "github.com/osse101/UpgradeDraft_Go/internal/levelup"

// Registry defaults
const (
	DefaultMaxPlayers = 10000
	DefaultPlayerTTL  = 24 * time.Hour
)

// Rejection reasons carried by draft.rejected events
const (
	ReasonInvalidChoice     = "invalid_choice"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonAlreadyActive     = "already_active"
	ReasonNoActiveSession   = "no_active_session"
	ReasonPlayerDefeated    = "player_defeated"
	ReasonEffectFailed      = "effect_failed"
)

// Span names
const (
	SpanStartDraft    = "levelup.StartDraft"
	SpanConfirmChoice = "levelup.ConfirmChoice"
	SpanAbandonDraft  = "levelup.AbandonDraft"
	SpanAddExperience = "levelup.AddExperience"
)

// Span attribute keys
const (
	AttrPlayerID  = "player.id"
	AttrSessionID = "draft.session_id"
	AttrOffers    = "draft.offers"
	AttrIndex     = "draft.index"
	AttrOptionKey = "draft.option_key"
)

// Log messages
const (
	LogMsgPlayerRegistered   = "Player registered"
	LogMsgPlayerEvicted      = "Player evicted from registry"
	LogMsgThresholdCrossed   = "Experience threshold crossed"
	LogMsgDraftStarted       = "Draft started"
	LogMsgDraftResolved      = "Draft resolved"
	LogMsgDraftAbandoned     = "Draft abandoned"
	LogMsgDraftRejected      = "Draft request rejected"
	LogMsgEmptyDraft         = "Draft started with no eligible options"
	LogMsgAutoStartFailed    = "Failed to start queued level-up draft"
	LogMsgPublishFailed      = "Failed to publish draft event"
	LogMsgRefundFailed       = "Failed to refund upgrade cost"
	LogMsgServiceShutdown    = "Level-up service shutting down..."
	LogMsgServiceShutdownEnd = "Level-up service shutdown complete"
)
