// Package seed populates an empty lobby with demo data described in YAML.
// Everything goes through the membership coordinator, so seeded state obeys
// the same rules as state built over the API.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
)

//go:embed default.yaml
var defaultData []byte

// File is the seed document layout
type File struct {
	Players []string   `yaml:"players"`
	Games   []GameData `yaml:"games"`
}

// GameData describes one game. The owner is referenced by player name and
// is only a member if listed in Members.
type GameData struct {
	Name    string     `yaml:"name"`
	Owner   string     `yaml:"owner"`
	Members []string   `yaml:"members"`
	Teams   []TeamData `yaml:"teams"`
}

// TeamData describes one team. The owner must be a member of the game and
// joins the team on creation.
type TeamData struct {
	Name    string   `yaml:"name"`
	Owner   string   `yaml:"owner"`
	Members []string `yaml:"members"`
}

// Summary counts what was created. Skipped is set when the store already
// held players and nothing was written.
type Summary struct {
	Players int
	Games   int
	Teams   int
	Skipped bool
}

// Default returns the built-in demo data set
func Default() (*File, error) {
	return Parse(defaultData)
}

// LoadFile reads a seed document from disk
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every referenced player is declared exactly once and
// that team owners and members belong to the team's game
func (f *File) Validate() error {
	declared := make(map[string]bool, len(f.Players))
	for _, name := range f.Players {
		if declared[name] {
			return fmt.Errorf("player %q declared twice", name)
		}
		declared[name] = true
	}

	inGame := make(map[string]string)
	for _, g := range f.Games {
		if !declared[g.Owner] {
			return fmt.Errorf("game %q: unknown owner %q", g.Name, g.Owner)
		}
		for _, m := range g.Members {
			if !declared[m] {
				return fmt.Errorf("game %q: unknown member %q", g.Name, m)
			}
			if other, ok := inGame[m]; ok {
				return fmt.Errorf("player %q is a member of both %q and %q", m, other, g.Name)
			}
			inGame[m] = g.Name
		}

		inTeam := make(map[string]bool)
		for _, t := range g.Teams {
			for _, m := range append([]string{t.Owner}, t.Members...) {
				if inGame[m] != g.Name {
					return fmt.Errorf("team %q: %q is not a member of game %q", t.Name, m, g.Name)
				}
				if inTeam[m] {
					return fmt.Errorf("team %q: %q is already in a team", t.Name, m)
				}
				inTeam[m] = true
			}
		}
	}
	return nil
}

// Apply creates the document's players, games and teams in order. A store
// that already has players is left alone, so restarting a server with
// persistent storage does not duplicate the demo data.
func Apply(ctx context.Context, c *membership.Coordinator, f *File, logger *slog.Logger) (Summary, error) {
	var sum Summary
	if f == nil {
		return sum, errors.New("no seed data")
	}

	existing, err := c.ListPlayers(ctx)
	if err != nil {
		return sum, fmt.Errorf("check existing data: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped: store is not empty", slog.Int("players", len(existing)))
		sum.Skipped = true
		return sum, nil
	}

	ids := make(map[string]model.PlayerID, len(f.Players))
	for _, name := range f.Players {
		p, err := c.CreatePlayer(ctx, name)
		if err != nil {
			return sum, fmt.Errorf("create player %q: %w", name, err)
		}
		ids[name] = p.ID
		sum.Players++
	}

	for _, g := range f.Games {
		game, err := c.CreateGame(ctx, ids[g.Owner], g.Name)
		if err != nil {
			return sum, fmt.Errorf("create game %q: %w", g.Name, err)
		}
		gameID := game.Game.ID
		sum.Games++

		for _, m := range g.Members {
			if _, err := c.JoinGame(ctx, gameID, ids[m]); err != nil {
				return sum, fmt.Errorf("game %q: join %q: %w", g.Name, m, err)
			}
		}

		for _, t := range g.Teams {
			team, err := c.CreateTeam(ctx, gameID, ids[t.Owner], t.Name)
			if err != nil {
				return sum, fmt.Errorf("create team %q: %w", t.Name, err)
			}
			sum.Teams++

			for _, m := range t.Members {
				if _, err := c.JoinTeam(ctx, gameID, team.Team.ID, ids[m]); err != nil {
					return sum, fmt.Errorf("team %q: join %q: %w", t.Name, m, err)
				}
			}
		}
	}

	logger.Info("seed data loaded",
		slog.Int("players", sum.Players),
		slog.Int("games", sum.Games),
		slog.Int("teams", sum.Teams))
	return sum, nil
}
