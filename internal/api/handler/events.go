package handler

import (
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
	"github.com/miikama/game-lobby-REST-backend/internal/sse"
)

// EventsHandler streams membership events for a game
type EventsHandler struct {
	coordinator *membership.Coordinator
	hubs        *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(coordinator *membership.Coordinator, hubs *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		coordinator: coordinator,
		hubs:        hubs,
	}
}

// Stream handles GET /games/game{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// The hub is created under the membership lock so a concurrent delete
	// either finds it or the lookup fails here
	var hub *sse.Hub
	err = h.coordinator.WatchGame(r.Context(), gameID, func() {
		hub = h.hubs.GetOrCreateHub(gameID)
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, hub)
}
