package membership

import (
	"context"
	"log/slog"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// CreateGame creates a game owned by ownerID. The owner is not enrolled as
// a member. An empty name defaults to "game<id>".
func (c *Coordinator) CreateGame(ctx context.Context, ownerID model.PlayerID, name string) (*model.GameView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetPlayer(ctx, ownerID); err != nil {
		return nil, err
	}

	id, err := c.nextID(ctx, storage.KindGame)
	if err != nil {
		return nil, err
	}
	gameID := model.GameID(id)
	if name == "" {
		name = model.DefaultGameName(gameID)
	}

	ch := c.newChange()
	game := &model.Game{
		ID:        gameID,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: ch.now,
	}
	ch.batch.SaveGames = append(ch.batch.SaveGames, game)
	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", gameID.String()),
		slog.String("owner_id", ownerID.String()))
	return c.gameView(ctx, game)
}

// JoinGame adds the player to the game. A player already in another game
// leaves it first, as part of the same change.
func (c *Coordinator) JoinGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.GameView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.InGame(gameID) {
		return nil, model.ErrAlreadyInGame
	}

	ch := c.newChange()
	player = ch.stage(player)
	if err := c.leaveCurrentGame(ctx, ch, player); err != nil {
		return nil, err
	}
	player.GameID = &gameID
	ch.emit(model.EventPlayerJoined, gameID, nil, playerID)

	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}
	return c.gameView(ctx, game)
}

// LeaveGame removes the player from the game, disbanding the player's team
// first if the player owns it
func (c *Coordinator) LeaveGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if !player.InGame(gameID) {
		return model.ErrNotInGame
	}

	ch := c.newChange()
	if err := c.leaveCurrentGame(ctx, ch, ch.stage(player)); err != nil {
		return err
	}
	return c.commit(ctx, ch)
}

// DeleteGame destroys the game if requesterID owns it. Every team is
// disbanded and every member detached in the same change.
func (c *Coordinator) DeleteGame(ctx context.Context, gameID model.GameID, requesterID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if _, err := c.storage.GetPlayer(ctx, requesterID); err != nil {
		return err
	}
	// Ownership is plain id equality; callers are not authenticated.
	if game.OwnerID != requesterID {
		return model.ErrNotGameOwner
	}

	ch := c.newChange()

	teams, err := c.storage.ListTeamsInGame(ctx, gameID)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if err := c.disbandTeam(ctx, ch, team); err != nil {
			return err
		}
	}

	members, err := c.storage.ListPlayersInGame(ctx, gameID)
	if err != nil {
		return err
	}
	for _, m := range members {
		ch.stage(m).ClearMembership()
	}

	ch.batch.DeleteGames = append(ch.batch.DeleteGames, gameID)
	ch.emit(model.EventGameDeleted, gameID, nil, requesterID)

	if err := c.commit(ctx, ch); err != nil {
		return err
	}

	c.logger.Info("game deleted",
		slog.String("game_id", gameID.String()),
		slog.Int("teams", len(teams)),
		slog.Int("members", len(members)))
	return nil
}

// GetGame returns the game with its owner, members and teams
func (c *Coordinator) GetGame(ctx context.Context, id model.GameID) (*model.GameView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.gameView(ctx, game)
}

// ListGames returns every game in creation order
func (c *Coordinator) ListGames(ctx context.Context) ([]*model.GameView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*model.GameView, 0, len(games))
	for _, g := range games {
		v, err := c.gameView(ctx, g)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// WatchGame runs attach under the membership lock once the game is known
// to exist. A subscriber attached this way is in place before any later
// transition of the game is published, including its deletion.
func (c *Coordinator) WatchGame(ctx context.Context, gameID model.GameID, attach func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	attach()
	return nil
}
