package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// PlayerID returns the player the event concerns, or "" when unknown
func (e Event) PlayerID() string {
	if id, ok := e.GetMetadataValue(MetadataKeyPlayerID).(string); ok {
		return id
	}
	return ""
}

// Draft lifecycle event types
const (
	ThresholdCrossed Type = Type(domain.EventTypeThresholdCrossed)
	DraftStarted     Type = Type(domain.EventTypeDraftStarted)
	DraftResolved    Type = Type(domain.EventTypeDraftResolved)
	DraftAbandoned   Type = Type(domain.EventTypeDraftAbandoned)
	DraftRejected    Type = Type(domain.EventTypeDraftRejected)
)

// AllTypes lists every draft lifecycle event type
var AllTypes = []Type{ThresholdCrossed, DraftStarted, DraftResolved, DraftAbandoned, DraftRejected}

// Typed event payloads for type safety

// ThresholdCrossedPayloadV1 is published once per experience threshold crossing
type ThresholdCrossedPayloadV1 struct {
	PlayerID        string `json:"player_id"`
	Level           int    `json:"level"`
	Crossings       int    `json:"crossings"`
	PendingLevelUps int    `json:"pending_level_ups"`
	Timestamp       int64  `json:"timestamp"`
}

// OfferInfoV1 describes one offer slot in a draft event
type OfferInfoV1 struct {
	Slot        int    `json:"slot"`
	OptionKey   string `json:"option_key"`
	DisplayName string `json:"display_name"`
	Cost        int64  `json:"cost"`
	Affordable  bool   `json:"affordable"`
}

// DraftStartedPayloadV1 is the typed payload for draft started events
type DraftStartedPayloadV1 struct {
	PlayerID  string         `json:"player_id"`
	SessionID string         `json:"session_id"`
	Level     int            `json:"level"`
	Wage      int64          `json:"wage"`
	Payment   LevelUpPayment `json:"payment"`
	Offers    []OfferInfoV1  `json:"offers"`
	Timestamp int64          `json:"timestamp"`
}

// LevelUpPayment breaks down the wage paid when a draft consumes a pending level-up.
// Paid is false for drafts started without one.
type LevelUpPayment struct {
	Paid      bool  `json:"paid"`
	BaseWage  int64 `json:"base_wage"`
	WageBonus int64 `json:"wage_bonus"`
	Balance   int64 `json:"balance"`
}

// Total is the wage credited to the player
func (p LevelUpPayment) Total() int64 {
	return p.BaseWage + p.WageBonus
}

// DraftResolvedPayloadV1 is the typed payload for confirmed choices
type DraftResolvedPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	SessionID     string `json:"session_id"`
	Slot          int    `json:"slot"`
	OptionKey     string `json:"option_key"`
	Cost          int64  `json:"cost"`
	PurchaseCount int    `json:"purchase_count"`
	Balance       int64  `json:"balance"`
	Timestamp     int64  `json:"timestamp"`
}

// DraftAbandonedPayloadV1 is the typed payload for abandoned drafts
type DraftAbandonedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	SessionID string `json:"session_id"`
	Timestamp int64  `json:"timestamp"`
}

// DraftRejectedPayloadV1 is the typed payload for refused choices
type DraftRejectedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

func playerMetadata(playerID, sessionID string) map[string]interface{} {
	m := map[string]interface{}{MetadataKeyPlayerID: playerID}
	if sessionID != "" {
		m[MetadataKeySessionID] = sessionID
	}
	return m
}

// Type-safe event constructors

// NewThresholdCrossedEvent creates a threshold crossed event
func NewThresholdCrossedEvent(playerID string, level, crossings, pending int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ThresholdCrossed,
		Payload: ThresholdCrossedPayloadV1{
			PlayerID:        playerID,
			Level:           level,
			Crossings:       crossings,
			PendingLevelUps: pending,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: playerMetadata(playerID, ""),
	}
}

// NewDraftStartedEvent creates a draft started event from a snapshot
func NewDraftStartedEvent(snap domain.DraftSnapshot, pay LevelUpPayment) Event {
	offers := make([]OfferInfoV1, 0, len(snap.Offers))
	for _, o := range snap.Offers {
		offers = append(offers, OfferInfoV1{
			Slot:        o.Slot,
			OptionKey:   o.Option.Key,
			DisplayName: o.Option.DisplayName,
			Cost:        o.Option.Cost,
			Affordable:  o.Affordable,
		})
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    DraftStarted,
		Payload: DraftStartedPayloadV1{
			PlayerID:  snap.PlayerID,
			SessionID: snap.SessionID,
			Level:     snap.Level,
			Wage:      pay.Total(),
			Payment:   pay,
			Offers:    offers,
			Timestamp: time.Now().Unix(),
		},
		Metadata: playerMetadata(snap.PlayerID, snap.SessionID),
	}
}

// NewDraftResolvedEvent creates a draft resolved event
func NewDraftResolvedEvent(res domain.DraftResolution) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DraftResolved,
		Payload: DraftResolvedPayloadV1{
			PlayerID:      res.PlayerID,
			SessionID:     res.SessionID,
			Slot:          res.Slot,
			OptionKey:     res.Chosen.Key,
			Cost:          res.Chosen.Cost,
			PurchaseCount: res.PurchaseCount,
			Balance:       res.Balance,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: playerMetadata(res.PlayerID, res.SessionID),
	}
}

// NewDraftAbandonedEvent creates a draft abandoned event
func NewDraftAbandonedEvent(playerID, sessionID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DraftAbandoned,
		Payload: DraftAbandonedPayloadV1{
			PlayerID:  playerID,
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: playerMetadata(playerID, sessionID),
	}
}

// NewDraftRejectedEvent creates a draft rejected event
func NewDraftRejectedEvent(playerID, sessionID string, index int, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DraftRejected,
		Payload: DraftRejectedPayloadV1{
			PlayerID:  playerID,
			SessionID: sessionID,
			Index:     index,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
		Metadata: playerMetadata(playerID, sessionID),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
