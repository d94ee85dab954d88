package handler

import (
	"net/http"

	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
)

// ConfirmChoiceRequest selects one of the current offers by slot
type ConfirmChoiceRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// HandleGetDraft returns the player's current draft, or an idle snapshot
// @Summary Current draft
// @Tags drafts
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} domain.DraftSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/draft [get]
func HandleGetDraft(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		snap, err := svc.GetActiveDraft(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetDraft, err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleStartDraft starts a draft with the catalog's slot count
// @Summary Start draft
// @Description Consumes a pending level-up when one is queued, paying its wage first.
// @Tags drafts
// @Produce json
// @Param id path string true "Player ID"
// @Success 201 {object} domain.DraftSnapshot
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players/{id}/draft/start [post]
func HandleStartDraft(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		snap, err := svc.StartDraft(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpStartDraft, err)
			return
		}

		logger.FromContext(r.Context()).Info("Draft started",
			"player_id", playerID,
			"session_id", snap.SessionID,
			"offers", len(snap.Offers))
		respondJSON(w, http.StatusCreated, snap)
	}
}

// HandleConfirmChoice resolves the current draft with the chosen slot
// @Summary Confirm choice
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param request body ConfirmChoiceRequest true "Choice"
// @Success 200 {object} domain.DraftResolution
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players/{id}/draft/confirm [post]
func HandleConfirmChoice(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		var req ConfirmChoiceRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpConfirmChoice); err != nil {
			return
		}

		res, err := svc.ConfirmChoice(r.Context(), playerID, *req.Index)
		if err != nil {
			respondServiceError(w, r, OpConfirmChoice, err)
			return
		}

		logger.FromContext(r.Context()).Info("Draft resolved",
			"player_id", playerID,
			"option", res.Chosen.Key,
			"purchase_count", res.PurchaseCount)
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleAbandonDraft discards the current draft without side effects
// @Summary Abandon draft
// @Tags drafts
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players/{id}/draft/abandon [post]
func HandleAbandonDraft(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.AbandonDraft(r.Context(), playerID); err != nil {
			respondServiceError(w, r, OpAbandonDraft, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDraftAbandoned})
	}
}
