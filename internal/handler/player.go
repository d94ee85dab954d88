package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

// RegisterPlayerRequest creates a new player
type RegisterPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,playerid"`
}

// ExperienceRequest grants experience to a player
type ExperienceRequest struct {
	Amount float64 `json:"amount" validate:"gt=0,max=1000000000"`
}

// HealthChangeRequest damages or heals a player
type HealthChangeRequest struct {
	Amount int `json:"amount" validate:"gt=0,max=1000000"`
}

// LedgerResponse lists how often each option was bought
type LedgerResponse struct {
	PlayerID  string         `json:"player_id"`
	Purchases map[string]int `json:"purchases"`
}

// PurchaseCountResponse is the purchase count for one option
type PurchaseCountResponse struct {
	PlayerID  string `json:"player_id"`
	OptionKey string `json:"option_key"`
	Count     int    `json:"count"`
}

// HandleRegisterPlayer registers a new player with starting balance and health
// @Summary Register player
// @Tags players
// @Accept json
// @Produce json
// @Param request body RegisterPlayerRequest true "Player"
// @Success 201 {object} domain.PlayerState
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players [post]
func HandleRegisterPlayer(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPlayerRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpRegisterPlayer); err != nil {
			return
		}

		state, err := svc.RegisterPlayer(r.Context(), req.PlayerID)
		if err != nil {
			respondServiceError(w, r, OpRegisterPlayer, err)
			return
		}

		logger.FromContext(r.Context()).Info("Player registered", "player_id", req.PlayerID)
		respondJSON(w, http.StatusCreated, state)
	}
}

// HandleGetPlayer returns the player's wallet, health, experience and stats
// @Summary Get player
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} domain.PlayerState
// @Failure 404 {object} ErrorResponse
// @Router /players/{id} [get]
func HandleGetPlayer(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		state, err := svc.GetPlayer(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetPlayer, err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleAddExperience grants experience; crossed thresholds queue level-ups
// @Summary Add experience
// @Description Each threshold crossed queues a level-up. An idle player starts a draft at once.
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param request body ExperienceRequest true "Amount"
// @Success 200 {object} domain.ExperienceResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/experience [post]
func HandleAddExperience(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		var req ExperienceRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpAddExperience); err != nil {
			return
		}

		res, err := svc.AddExperience(r.Context(), playerID, req.Amount)
		if err != nil {
			respondServiceError(w, r, OpAddExperience, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleDamage reduces a player's health
// @Summary Damage player
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param request body HealthChangeRequest true "Amount"
// @Success 200 {object} domain.PlayerState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/damage [post]
func HandleDamage(svc levelup.Service) http.HandlerFunc {
	return handleHealthChange(OpDamage, svc.Damage)
}

// HandleHeal restores a player's health up to the maximum
// @Summary Heal player
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param request body HealthChangeRequest true "Amount"
// @Success 200 {object} domain.PlayerState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/heal [post]
func HandleHeal(svc levelup.Service) http.HandlerFunc {
	return handleHealthChange(OpHeal, svc.Heal)
}

func handleHealthChange(opName string, action func(context.Context, string, int) (*domain.PlayerState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		var req HealthChangeRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		state, err := action(r.Context(), playerID, req.Amount)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleGetLedger returns the player's purchase counts
// @Summary Purchase ledger
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} LedgerResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/ledger [get]
func HandleGetLedger(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		ledger, err := svc.GetLedger(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetLedger, err)
			return
		}
		respondJSON(w, http.StatusOK, LedgerResponse{PlayerID: playerID, Purchases: ledger})
	}
}

// HandleGetPurchaseCount returns how often one option was bought
// @Summary Purchase count
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Param option path string true "Option key"
// @Success 200 {object} PurchaseCountResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/ledger/{option} [get]
func HandleGetPurchaseCount(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}
		optionKey := chi.URLParam(r, "option")

		count, err := svc.PurchaseCount(r.Context(), playerID, optionKey)
		if err != nil {
			respondServiceError(w, r, OpGetLedger, err)
			return
		}
		respondJSON(w, http.StatusOK, PurchaseCountResponse{PlayerID: playerID, OptionKey: optionKey, Count: count})
	}
}
