package ws

import (
	"errors"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
)

// Inbound message types
const (
	TypeChoose  = "CHOOSE"
	TypeAbandon = "ABANDON"
)

// Outbound message types
const (
	TypeSnapshot  = "SNAPSHOT"
	TypeEvent     = "EVENT"
	TypeResolved  = "RESOLVED"
	TypeAbandoned = "ABANDONED"
	TypeError     = "ERROR"
)

// Error codes carried by ERROR messages
const (
	CodeBadMessage       = "bad_message"
	CodeInvalidChoice    = "invalid_choice"
	CodeInsufficientFund = "insufficient_funds"
	CodeNoActiveSession  = "no_active_session"
	CodePlayerNotFound   = "player_not_found"
	CodeInternal         = "internal"
)

// ClientMsg is a message sent by the player's client
type ClientMsg struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
}

// ServerMsg is a message pushed to the player's client
type ServerMsg struct {
	Type       string                  `json:"type"`
	Draft      *domain.DraftSnapshot   `json:"draft,omitempty"`
	Event      *sse.Event              `json:"event,omitempty"`
	Resolution *domain.DraftResolution `json:"resolution,omitempty"`
	Code       string                  `json:"code,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func errorMsg(code, msg string) ServerMsg {
	return ServerMsg{Type: TypeError, Code: code, Error: msg}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidChoice):
		return CodeInvalidChoice
	case errors.Is(err, domain.ErrInsufficientFunds):
		return CodeInsufficientFund
	case errors.Is(err, domain.ErrNoActiveSession):
		return CodeNoActiveSession
	case errors.Is(err, domain.ErrPlayerNotFound):
		return CodePlayerNotFound
	default:
		return CodeInternal
	}
}
