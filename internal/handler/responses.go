package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// encode first so a failure can still produce a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPlayerNotFound     = "Player not found"
	ErrMsgPlayerExists       = "Player already exists"
	ErrMsgPlayerDefeated     = "Player is defeated"
	ErrMsgInvalidAmount      = "Amount must be positive"
	ErrMsgNotEnoughMoney     = "Not enough money for that upgrade"
	ErrMsgInvalidChoice      = "Choice is not one of the current offers"
	ErrMsgDraftAlreadyActive = "A draft is already in progress"
	ErrMsgNoActiveDraft      = "No draft is in progress"
	ErrMsgUnknownOption      = "Unknown upgrade option"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFound
	case errors.Is(err, domain.ErrUnknownOption):
		return http.StatusNotFound, ErrMsgUnknownOption
	case errors.Is(err, domain.ErrPlayerAlreadyExists):
		return http.StatusConflict, ErrMsgPlayerExists
	case errors.Is(err, domain.ErrSessionAlreadyActive):
		return http.StatusConflict, ErrMsgDraftAlreadyActive
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusConflict, ErrMsgNoActiveDraft
	case errors.Is(err, domain.ErrPlayerDefeated):
		return http.StatusConflict, ErrMsgPlayerDefeated
	case errors.Is(err, domain.ErrInvalidChoice):
		return http.StatusBadRequest, ErrMsgInvalidChoice
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoney
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmount
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
