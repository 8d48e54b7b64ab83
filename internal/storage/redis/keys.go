package redis

import (
	"fmt"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// Key prefix for all lobby data
const keyPrefix = "lobby"

// leaseKey holds the token of the server instance that owns the keyspace
func leaseKey() string {
	return keyPrefix + ":lease"
}

// sequenceKey returns the Redis key for the INCR counter of an id kind
func sequenceKey(kind storage.Kind) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, kind)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// allIndexKey returns the Redis key for the SET of every record key of a kind
func allIndexKey(kind storage.Kind) string {
	return fmt.Sprintf("%s:idx:all:%s", keyPrefix, kind)
}

// gamePlayersIndexKey returns the Redis key for the SET of player keys in a game
func gamePlayersIndexKey(id model.GameID) string {
	return fmt.Sprintf("%s:idx:game_players:%s", keyPrefix, id)
}

// gameTeamsIndexKey returns the Redis key for the SET of team keys in a game
func gameTeamsIndexKey(id model.GameID) string {
	return fmt.Sprintf("%s:idx:game_teams:%s", keyPrefix, id)
}

// teamPlayersIndexKey returns the Redis key for the SET of player keys in a team
func teamPlayersIndexKey(id model.TeamID) string {
	return fmt.Sprintf("%s:idx:team_players:%s", keyPrefix, id)
}
