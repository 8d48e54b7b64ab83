package cli

import (
	"fmt"
	"strconv"
)

func parseID(what, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func playerPath(id int64) string { return fmt.Sprintf("/players/player%d", id) }

func gamePath(id int64) string { return fmt.Sprintf("/games/game%d", id) }

func teamsPath(gameID int64) string { return gamePath(gameID) + "/teams" }

func teamPath(gameID, teamID int64) string {
	return fmt.Sprintf("%s/team%d", teamsPath(gameID), teamID)
}

// Request bodies

type idRef struct {
	ID int64 `json:"id"`
}

type nameRef struct {
	Name string `json:"name"`
}

type playerBody struct {
	Player idRef `json:"player"`
}

type leaveBody struct {
	DelPlayer idRef `json:"del_player"`
}

func actingPlayerBody() (playerBody, error) {
	id, err := cfg.ActingPlayer()
	return playerBody{Player: idRef{ID: id}}, err
}
