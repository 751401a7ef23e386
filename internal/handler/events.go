package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/SpiritForge_Go/internal/eventlog"
	"github.com/osse101/SpiritForge_Go/internal/logger"
)

// ActorEventsResponse lists an actor's audit events
type ActorEventsResponse struct {
	ActorID string           `json:"actor_id"`
	Events  []eventlog.Event `json:"events"`
}

// HandleGetActorEvents returns the newest crafting events of an actor
// @Summary Actor event history
// @Tags events
// @Produce json
// @Param actorID path string true "Actor ID"
// @Param type query string false "Event type, e.g. item.crafted"
// @Param limit query int false "Maximum events (default 50, max 500)"
// @Success 200 {object} ActorEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /actors/{actorID}/events [get]
func HandleGetActorEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		actorID := chi.URLParam(r, "actorID")
		eventType := r.URL.Query().Get("type")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "limit"))
				return
			}
			limit = n
		}

		events, err := svc.GetActorEvents(r.Context(), actorID, eventType, limit)
		if err != nil {
			log.Error(LogMsgGetEventsFailed, "error", err, "actor_id", actorID)
			respondServiceError(w, err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}

		respondJSON(w, http.StatusOK, ActorEventsResponse{ActorID: actorID, Events: events})
	}
}
