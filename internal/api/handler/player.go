package handler

import (
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/api/request"
	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	coordinator *membership.Coordinator
	decoder     *request.Decoder
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(coordinator *membership.Coordinator, decoder *request.Decoder) *PlayerHandler {
	return &PlayerHandler{
		coordinator: coordinator,
		decoder:     decoder,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.coordinator.ListPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersResponse{Players: response.PlayersFromModel(players)})
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.coordinator.CreatePlayer(r.Context(), req.Name())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Created(w, response.PlayerPath(player.ID), response.PlayerFromModel(player))
}

// Get handles GET /players/player{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.coordinator.GetPlayer(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Rename handles PATCH /players/player{id}
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.RenamePlayerRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.coordinator.RenamePlayer(r.Context(), id, *req.Player.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
