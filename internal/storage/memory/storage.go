package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers never share state
// with the store.
type Storage struct {
	mu sync.RWMutex

	sequences map[storage.Kind]int64
	players   map[model.PlayerID]*model.Player
	games     map[model.GameID]*model.Game
	teams     map[model.TeamID]*model.Team
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sequences: make(map[storage.Kind]int64),
		players:   make(map[model.PlayerID]*model.Player),
		games:     make(map[model.GameID]*model.Game),
		teams:     make(map[model.TeamID]*model.Team),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextID(ctx context.Context, kind storage.Kind) (int64, error) {
	switch kind {
	case storage.KindPlayer, storage.KindGame, storage.KindTeam:
	default:
		return 0, fmt.Errorf("unknown sequence %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[kind]++
	return s.sequences[kind], nil
}

func (s *Storage) Apply(ctx context.Context, batch *storage.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range batch.SaveGames {
		s.games[g.ID] = g.Clone()
	}
	for _, t := range batch.SaveTeams {
		s.teams[t.ID] = t.Clone()
	}
	for _, p := range batch.SavePlayers {
		s.players[p.ID] = p.Clone()
	}
	for _, id := range batch.DeleteTeams {
		delete(s.teams, id)
	}
	for _, id := range batch.DeleteGames {
		delete(s.games, id)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.filterPlayers(func(*model.Player) bool { return true }), nil
}

func (s *Storage) ListPlayersInGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	return s.filterPlayers(func(p *model.Player) bool { return p.InGame(gameID) }), nil
}

func (s *Storage) ListPlayersInTeam(ctx context.Context, teamID model.TeamID) ([]*model.Player, error) {
	return s.filterPlayers(func(p *model.Player) bool { return p.InTeam(teamID) }), nil
}

func (s *Storage) filterPlayers(keep func(*model.Player) bool) []*model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Player, 0)
	for _, p := range s.players {
		if keep(p) {
			result = append(result, p.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Game operations

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Team operations

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team.Clone(), nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.filterTeams(func(*model.Team) bool { return true }), nil
}

func (s *Storage) ListTeamsInGame(ctx context.Context, gameID model.GameID) ([]*model.Team, error) {
	return s.filterTeams(func(t *model.Team) bool { return t.GameID == gameID }), nil
}

func (s *Storage) filterTeams(keep func(*model.Team) bool) []*model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Team, 0)
	for _, t := range s.teams {
		if keep(t) {
			result = append(result, t.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
