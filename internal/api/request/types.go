package request

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// FlexID is an id that may be sent as a JSON number or a numeric string.
// A string that is not a number (including "") decodes to 0, which never
// resolves to a stored record.
type FlexID int64

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			n = 0
		}
		*id = FlexID(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n)
	return nil
}

// PlayerID converts the id to a player id
func (id FlexID) PlayerID() model.PlayerID {
	return model.PlayerID(id)
}

// IDRef is an object carrying a required id, e.g. {"id": 3}
type IDRef struct {
	ID *FlexID `json:"id" validate:"required"`
}

// NameRef is an object carrying an optional name, e.g. {"name": "alice"}
type NameRef struct {
	Name string `json:"name"`
}

// RequiredNameRef is an object carrying a required name
type RequiredNameRef struct {
	Name *string `json:"name" validate:"required"`
}

// CreatePlayerRequest is the request body for POST /players.
// Both the body and the name are optional.
type CreatePlayerRequest struct {
	Player *NameRef `json:"player"`
}

// Name returns the requested name, or "" if none was given
func (r *CreatePlayerRequest) Name() string {
	if r.Player == nil {
		return ""
	}
	return r.Player.Name
}

// RenamePlayerRequest is the request body for PATCH /players/player{id}
type RenamePlayerRequest struct {
	Player *RequiredNameRef `json:"player" validate:"required"`
}

// PlayerRequest is the request body naming the acting player, used to
// join or delete games and teams
type PlayerRequest struct {
	Player *IDRef `json:"player" validate:"required"`
}

// PlayerID returns the acting player's id
func (r *PlayerRequest) PlayerID() model.PlayerID {
	return r.Player.ID.PlayerID()
}

// JoinTeamRequest is the request body for PUT /games/game{id}/teams/team{id}.
// Nothing is required: a missing player resolves to no player, which the
// join reports as a failed precondition.
type JoinTeamRequest struct {
	Player *OptionalIDRef `json:"player"`
}

// OptionalIDRef is an id object whose id may be absent
type OptionalIDRef struct {
	ID FlexID `json:"id"`
}

// PlayerID returns the joining player's id, or 0 if none was sent
func (r *JoinTeamRequest) PlayerID() model.PlayerID {
	if r.Player == nil {
		return 0
	}
	return r.Player.ID.PlayerID()
}

// LeaveRequest is the request body for leaving a game or team
type LeaveRequest struct {
	DelPlayer *IDRef `json:"del_player" validate:"required"`
}

// PlayerID returns the leaving player's id
func (r *LeaveRequest) PlayerID() model.PlayerID {
	return r.DelPlayer.ID.PlayerID()
}

// CreateGameRequest is the request body for POST /games
type CreateGameRequest struct {
	Player *IDRef   `json:"player" validate:"required"`
	Game   *NameRef `json:"game"`
}

// PlayerID returns the owner's id
func (r *CreateGameRequest) PlayerID() model.PlayerID {
	return r.Player.ID.PlayerID()
}

// Name returns the requested game name, or "" if none was given
func (r *CreateGameRequest) Name() string {
	if r.Game == nil {
		return ""
	}
	return r.Game.Name
}

// CreateTeamRequest is the request body for POST /games/game{id}/teams
type CreateTeamRequest struct {
	Player *IDRef   `json:"player" validate:"required"`
	Team   *NameRef `json:"team"`
}

// PlayerID returns the creator's id
func (r *CreateTeamRequest) PlayerID() model.PlayerID {
	return r.Player.ID.PlayerID()
}

// Name returns the requested team name, or "" if none was given
func (r *CreateTeamRequest) Name() string {
	if r.Team == nil {
		return ""
	}
	return r.Team.Name
}
