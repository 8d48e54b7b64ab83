package handler

import (
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/api/request"
	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
)

// GameHandler handles game endpoints
type GameHandler struct {
	coordinator *membership.Coordinator
	decoder     *request.Decoder
}

// NewGameHandler creates a new game handler
func NewGameHandler(coordinator *membership.Coordinator, decoder *request.Decoder) *GameHandler {
	return &GameHandler{
		coordinator: coordinator,
		decoder:     decoder,
	}
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.coordinator.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesResponse{Games: response.GamesFromModel(games)})
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	game, err := h.coordinator.CreateGame(r.Context(), req.PlayerID(), req.Name())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Created(w, response.GamePath(game.Game.ID), response.GameFromModel(game))
}

// Get handles GET /games/game{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	game, err := h.coordinator.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Join handles PUT /games/game{id}
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.PlayerRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	game, err := h.coordinator.JoinGame(r.Context(), id, req.PlayerID())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Leave handles PATCH /games/game{id}
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.LeaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.coordinator.LeaveGame(r.Context(), id, req.PlayerID()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w)
}

// Delete handles DELETE /games/game{id}. The requesting player must own
// the game.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.PlayerRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.coordinator.DeleteGame(r.Context(), id, req.PlayerID()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w)
}
