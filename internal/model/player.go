package model

import (
	"strconv"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID int64

func (id PlayerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// DefaultPlayerName is used when a player registers without a name
const DefaultPlayerName = "anonymous"

// Player represents a registered participant.
// A player belongs to at most one game and at most one team; TeamID set
// implies GameID set and equal to the team's game.
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	GameID    *GameID   `json:"game_id,omitempty"`
	TeamID    *TeamID   `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InGame reports whether the player is currently a member of the given game
func (p *Player) InGame(id GameID) bool {
	return p.GameID != nil && *p.GameID == id
}

// InTeam reports whether the player is currently a member of the given team
func (p *Player) InTeam(id TeamID) bool {
	return p.TeamID != nil && *p.TeamID == id
}

// ClearTeam detaches the player from its team, keeping the game
func (p *Player) ClearTeam() {
	p.TeamID = nil
}

// ClearMembership detaches the player from both its team and its game
func (p *Player) ClearMembership() {
	p.TeamID = nil
	p.GameID = nil
}

// Clone returns a deep copy so callers can stage changes without aliasing
// the stored record.
func (p *Player) Clone() *Player {
	c := *p
	if p.GameID != nil {
		g := *p.GameID
		c.GameID = &g
	}
	if p.TeamID != nil {
		t := *p.TeamID
		c.TeamID = &t
	}
	return &c
}
