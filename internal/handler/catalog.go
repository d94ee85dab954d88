package handler

import (
	"net/http"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
)

// OptionsResponse lists the upgrade catalog
type OptionsResponse struct {
	Options []domain.UpgradeOption `json:"options"`
}

// HandleGetOptions returns every upgrade option in the catalog
// @Summary List upgrade options
// @Tags catalog
// @Produce json
// @Success 200 {object} OptionsResponse
// @Router /options [get]
func HandleGetOptions(svc levelup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, OptionsResponse{Options: svc.GetOptions(r.Context())})
	}
}
