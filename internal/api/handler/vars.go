package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// Route variable names shared with the router
const (
	VarPlayerID = "player_id"
	VarGameID   = "game_id"
	VarTeamID   = "team_id"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierr.NewInvalidRequestError("invalid " + name)
	}
	return id, nil
}

func playerIDVar(r *http.Request) (model.PlayerID, error) {
	id, err := pathID(r, VarPlayerID)
	return model.PlayerID(id), err
}

func gameIDVar(r *http.Request) (model.GameID, error) {
	id, err := pathID(r, VarGameID)
	return model.GameID(id), err
}

func teamIDVars(r *http.Request) (model.GameID, model.TeamID, error) {
	gameID, err := gameIDVar(r)
	if err != nil {
		return 0, 0, err
	}
	teamID, err := pathID(r, VarTeamID)
	return gameID, model.TeamID(teamID), err
}
