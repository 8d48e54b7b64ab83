package handler

import (
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/api/request"
	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
)

// TeamHandler handles team endpoints nested under a game
type TeamHandler struct {
	coordinator *membership.Coordinator
	decoder     *request.Decoder
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(coordinator *membership.Coordinator, decoder *request.Decoder) *TeamHandler {
	return &TeamHandler{
		coordinator: coordinator,
		decoder:     decoder,
	}
}

// List handles GET /games/game{id}/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	teams, err := h.coordinator.ListTeams(r.Context(), &gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamsResponse{Teams: response.TeamsFromModel(teams)})
}

// Create handles POST /games/game{id}/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CreateTeamRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	team, err := h.coordinator.CreateTeam(r.Context(), gameID, req.PlayerID(), req.Name())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.Created(w, response.TeamPath(team.Team.GameID, team.Team.ID), response.TeamFromModel(team))
}

// Get handles GET /games/game{id}/teams/team{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, teamID, err := teamIDVars(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	team, err := h.coordinator.GetTeam(r.Context(), gameID, teamID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}

// Join handles PUT /games/game{id}/teams/team{id}
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID, teamID, err := teamIDVars(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.JoinTeamRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	team, err := h.coordinator.JoinTeam(r.Context(), gameID, teamID, req.PlayerID())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}

// Leave handles PATCH /games/game{id}/teams/team{id}
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	gameID, teamID, err := teamIDVars(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.LeaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.coordinator.LeaveTeam(r.Context(), gameID, teamID, req.PlayerID()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w)
}

// Delete handles DELETE /games/game{id}/teams/team{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, teamID, err := teamIDVars(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.PlayerRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.coordinator.DeleteTeam(r.Context(), gameID, teamID, req.PlayerID()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.OK(w)
}
