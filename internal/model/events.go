package model

import "time"

// EventType identifies the type of membership event
type EventType string

const (
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventGameDeleted   EventType = "game_deleted"
	EventTeamCreated   EventType = "team_created"
	EventTeamJoined    EventType = "team_joined"
	EventTeamLeft      EventType = "team_left"
	EventTeamDisbanded EventType = "team_disbanded"
)

// Event describes one membership change within a game
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	TeamID    *TeamID   `json:"team_id,omitempty"`
	PlayerID  PlayerID  `json:"player_id,omitempty"`
}
