package domain

import (
	"fmt"
	"time"
)

// DraftState is the lifecycle state of a draft session
type DraftState int

const (
	DraftIdle DraftState = iota
	DraftDrafting
	DraftAwaitingChoice
	DraftResolved
)

// String returns the wire name of the state
func (s DraftState) String() string {
	switch s {
	case DraftIdle:
		return "idle"
	case DraftDrafting:
		return "drafting"
	case DraftAwaitingChoice:
		return "awaiting_choice"
	case DraftResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// MarshalText lets the state serialize by name in JSON payloads
func (s DraftState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText
func (s *DraftState) UnmarshalText(text []byte) error {
	for st := DraftIdle; st <= DraftResolved; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown draft state %q", text)
}

// Offer binds an option to a slot of the current draft
type Offer struct {
	Slot       int           `json:"slot"`
	Option     UpgradeOption `json:"option"`
	Affordable bool          `json:"affordable"`
}

// DraftSnapshot is a read-only view of a player's draft session
type DraftSnapshot struct {
	SessionID string     `json:"session_id,omitempty"`
	PlayerID  string     `json:"player_id"`
	State     DraftState `json:"state"`
	Level     int        `json:"level"`
	Offers    []Offer    `json:"offers"`
	StartedAt time.Time  `json:"started_at,omitempty"`
}

// DraftResolution describes a confirmed choice
type DraftResolution struct {
	SessionID     string         `json:"session_id"`
	PlayerID      string         `json:"player_id"`
	Slot          int            `json:"slot"`
	Chosen        UpgradeOption  `json:"chosen"`
	PurchaseCount int            `json:"purchase_count"`
	Balance       int64          `json:"balance"`
	NextDraft     *DraftSnapshot `json:"next_draft,omitempty"`
}
