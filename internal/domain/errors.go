package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound      = "player not found"
	ErrMsgPlayerAlreadyExists = "player already exists"
	ErrMsgPlayerDefeated      = "player is defeated"

	// Draft errors
	ErrMsgSessionAlreadyActive = "a draft session is already active"
	ErrMsgNoActiveSession      = "no draft session is awaiting a choice"
	ErrMsgInvalidChoice        = "invalid choice"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Catalog errors
	ErrMsgUnknownOption       = "unknown upgrade option"
	ErrMsgDuplicateOptionKey  = "duplicate option key"
	ErrMsgMissingPrerequisite = "prerequisite references unknown option"
	ErrMsgCycleDetected       = "cycle detected in prerequisites"
	ErrMsgInvalidCatalog      = "invalid catalog"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound      = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerAlreadyExists = errors.New(ErrMsgPlayerAlreadyExists)
	ErrPlayerDefeated      = errors.New(ErrMsgPlayerDefeated)

	// Draft errors
	ErrSessionAlreadyActive = errors.New(ErrMsgSessionAlreadyActive)
	ErrNoActiveSession      = errors.New(ErrMsgNoActiveSession)
	ErrInvalidChoice        = errors.New(ErrMsgInvalidChoice)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Catalog errors
	ErrUnknownOption       = errors.New(ErrMsgUnknownOption)
	ErrDuplicateOptionKey  = errors.New(ErrMsgDuplicateOptionKey)
	ErrMissingPrerequisite = errors.New(ErrMsgMissingPrerequisite)
	ErrCycleDetected       = errors.New(ErrMsgCycleDetected)
	ErrInvalidCatalog      = errors.New(ErrMsgInvalidCatalog)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
