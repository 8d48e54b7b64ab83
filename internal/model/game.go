package model

import (
	"fmt"
	"strconv"
	"time"
)

// GameID uniquely identifies a game
type GameID int64

func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Game is a lobby that players join and form teams in.
// Members and teams are not stored on the game; they are the players and
// teams that reference it.
type Game struct {
	ID        GameID    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   PlayerID  `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultGameName derives a unique name from the game's id
func DefaultGameName(id GameID) string {
	return fmt.Sprintf("game%d", id)
}

// Clone returns a copy of the game
func (g *Game) Clone() *Game {
	c := *g
	return &c
}

// GameView is a game with its owner, members and teams resolved
type GameView struct {
	Game    *Game
	Owner   *Player
	Players []*Player
	Teams   []*TeamView
}
