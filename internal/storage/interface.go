package storage

//go:generate mockgen -source=interface.go -destination=mocks/storage.go -package=mocks

import (
	"context"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// Kind names an id sequence
type Kind string

const (
	KindPlayer Kind = "player"
	KindGame   Kind = "game"
	KindTeam   Kind = "team"
)

// Batch is a set of writes applied atomically by Apply.
// Implementations apply saves for games, teams and players (in that order)
// before deleting teams and then games.
type Batch struct {
	SaveGames   []*model.Game
	SaveTeams   []*model.Team
	SavePlayers []*model.Player
	DeleteTeams []model.TeamID
	DeleteGames []model.GameID
}

// Empty reports whether the batch has no writes
func (b *Batch) Empty() bool {
	return len(b.SaveGames) == 0 && len(b.SaveTeams) == 0 && len(b.SavePlayers) == 0 &&
		len(b.DeleteTeams) == 0 && len(b.DeleteGames) == 0
}

// Storage defines the interface for data persistence.
// Lists are returned in creation (id) order.
type Storage interface {
	// NextID allocates the next id in the sequence for kind
	NextID(ctx context.Context, kind Kind) (int64, error)

	// Apply commits every write in the batch or none of them
	Apply(ctx context.Context, batch *Batch) error

	// Player operations
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	ListPlayersInGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error)
	ListPlayersInTeam(ctx context.Context, teamID model.TeamID) ([]*model.Player, error)

	// Game operations
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Team operations
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	ListTeamsInGame(ctx context.Context, gameID model.GameID) ([]*model.Team, error)

	// Close releases any underlying connections
	Close() error
}
