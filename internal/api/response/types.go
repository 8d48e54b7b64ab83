package response

import (
	"fmt"
	"time"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// Player is the body of a player representation
type Player struct {
	ID   model.PlayerID `json:"id"`
	Name string         `json:"name"`
}

// PlayerEnvelope is the {"player": {...}} representation
type PlayerEnvelope struct {
	Player Player `json:"player"`
}

// PlayersResponse is the response for GET /players
type PlayersResponse struct {
	Players []PlayerEnvelope `json:"players"`
}

// PlayerFromModel converts a model.Player to its envelope
func PlayerFromModel(p *model.Player) PlayerEnvelope {
	return PlayerEnvelope{Player: Player{ID: p.ID, Name: p.Name}}
}

// PlayersFromModel converts players to envelopes, keeping order
func PlayersFromModel(players []*model.Player) []PlayerEnvelope {
	out := make([]PlayerEnvelope, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Team is the body of a team representation
type Team struct {
	ID      model.TeamID     `json:"id"`
	Name    string           `json:"name"`
	URL     string           `json:"url"`
	GameID  model.GameID     `json:"game_id"`
	Owner   *PlayerEnvelope  `json:"owner"`
	Players []PlayerEnvelope `json:"players"`
}

// TeamEnvelope is the {"team": {...}} representation
type TeamEnvelope struct {
	Team Team `json:"team"`
}

// TeamsResponse is the response for GET /games/game{id}/teams
type TeamsResponse struct {
	Teams []TeamEnvelope `json:"teams"`
}

// TeamFromModel converts a model.TeamView to its envelope
func TeamFromModel(v *model.TeamView) TeamEnvelope {
	return TeamEnvelope{Team: Team{
		ID:      v.Team.ID,
		Name:    v.Team.Name,
		URL:     TeamPath(v.Team.GameID, v.Team.ID),
		GameID:  v.Team.GameID,
		Owner:   ownerFromModel(v.Owner),
		Players: PlayersFromModel(v.Players),
	}}
}

// TeamsFromModel converts team views to envelopes, keeping order
func TeamsFromModel(views []*model.TeamView) []TeamEnvelope {
	out := make([]TeamEnvelope, len(views))
	for i, v := range views {
		out[i] = TeamFromModel(v)
	}
	return out
}

// Game is the body of a game representation
type Game struct {
	ID          model.GameID     `json:"id"`
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	CreatedTime time.Time        `json:"created_time"`
	Owner       *PlayerEnvelope  `json:"owner"`
	Players     []PlayerEnvelope `json:"players"`
	Teams       []TeamEnvelope   `json:"teams"`
}

// GameEnvelope is the {"game": {...}} representation
type GameEnvelope struct {
	Game Game `json:"game"`
}

// GamesResponse is the response for GET /games
type GamesResponse struct {
	Games []GameEnvelope `json:"games"`
}

// GameFromModel converts a model.GameView to its envelope
func GameFromModel(v *model.GameView) GameEnvelope {
	return GameEnvelope{Game: Game{
		ID:          v.Game.ID,
		Name:        v.Game.Name,
		URL:         GamePath(v.Game.ID),
		CreatedTime: v.Game.CreatedAt,
		Owner:       ownerFromModel(v.Owner),
		Players:     PlayersFromModel(v.Players),
		Teams:       TeamsFromModel(v.Teams),
	}}
}

// GamesFromModel converts game views to envelopes, keeping order
func GamesFromModel(views []*model.GameView) []GameEnvelope {
	out := make([]GameEnvelope, len(views))
	for i, v := range views {
		out[i] = GameFromModel(v)
	}
	return out
}

// StatusResponse is a plain acknowledgement
type StatusResponse struct {
	Status string `json:"status"`
}

func ownerFromModel(p *model.Player) *PlayerEnvelope {
	if p == nil {
		return nil
	}
	env := PlayerFromModel(p)
	return &env
}

// Resource paths, relative to the API root. They double as Location
// header values.

// PlayerPath returns the path of a player resource
func PlayerPath(id model.PlayerID) string {
	return fmt.Sprintf("players/player%d", id)
}

// GamePath returns the path of a game resource
func GamePath(id model.GameID) string {
	return fmt.Sprintf("games/game%d", id)
}

// TeamPath returns the path of a team resource
func TeamPath(gameID model.GameID, teamID model.TeamID) string {
	return fmt.Sprintf("games/game%d/teams/team%d", gameID, teamID)
}
