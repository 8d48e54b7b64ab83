package membership

import (
	"context"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// CreatePlayer registers a new player. An empty name becomes
// model.DefaultPlayerName.
func (c *Coordinator) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.nextID(ctx, storage.KindPlayer)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = model.DefaultPlayerName
	}

	ch := c.newChange()
	player := ch.stage(&model.Player{
		ID:        model.PlayerID(id),
		Name:      name,
		CreatedAt: ch.now,
	})
	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}
	return player, nil
}

// RenamePlayer replaces the player's name
func (c *Coordinator) RenamePlayer(ctx context.Context, id model.PlayerID, name string) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	ch := c.newChange()
	player = ch.stage(player)
	player.Name = name
	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}
	return player, nil
}

// GetPlayer returns a player by id
func (c *Coordinator) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.GetPlayer(ctx, id)
}

// ListPlayers returns every player in creation order
func (c *Coordinator) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.ListPlayers(ctx)
}
