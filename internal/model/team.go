package model

import (
	"strconv"
	"time"
)

// TeamID uniquely identifies a team
type TeamID int64

func (id TeamID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// DefaultTeamName is used when a team is created without a name
const DefaultTeamName = "new_team"

// Team is a sub-group within a single game. The game and owner never
// change; the team is disbanded when its owner leaves.
type Team struct {
	ID        TeamID    `json:"id"`
	Name      string    `json:"name"`
	GameID    GameID    `json:"game_id"`
	OwnerID   PlayerID  `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy of the team
func (t *Team) Clone() *Team {
	c := *t
	return &c
}

// TeamView is a team with its owner and members resolved
type TeamView struct {
	Team    *Team
	Owner   *Player
	Players []*Player
}
