package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/UpgradeDraft_Go/internal/eventlog"
)

// EventsResponse wraps logged events
type EventsResponse struct {
	Events []eventlog.Event `json:"events"`
	Count  int              `json:"count"`
}

// HandleGetEvents queries the audit log
// @Summary Query event log
// @Tags events
// @Produce json
// @Param player query string false "Player ID"
// @Param type query string false "Event type"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Max events"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [get]
func HandleGetEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter eventlog.EventFilter

		if p := GetOptionalQueryParam(r, "player", ""); p != "" {
			filter.PlayerID = &p
		}
		if t := GetOptionalQueryParam(r, "type", ""); t != "" {
			filter.EventType = &t
		}

		var err error
		if filter.Since, err = parseTimeParam(r, "since"); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidTime, "since"))
			return
		}
		if filter.Until, err = parseTimeParam(r, "until"); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidTime, "until"))
			return
		}
		if filter.Limit, err = parseLimit(r); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		events, err := svc.GetEvents(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, OpGetEvents, err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}
		respondJSON(w, http.StatusOK, EventsResponse{Events: events, Count: len(events)})
	}
}
