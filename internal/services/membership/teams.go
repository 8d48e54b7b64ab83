package membership

import (
	"context"
	"log/slog"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// CreateTeam creates a team in the game, owned by and containing creatorID.
// The creator must be a member of the game. A creator already in another
// team leaves it first (disbanding it if they own it).
func (c *Coordinator) CreateTeam(ctx context.Context, gameID model.GameID, creatorID model.PlayerID, name string) (*model.TeamView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	player, err := c.storage.GetPlayer(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !player.InGame(gameID) {
		return nil, model.ErrNotInGame
	}

	id, err := c.nextID(ctx, storage.KindTeam)
	if err != nil {
		return nil, err
	}
	teamID := model.TeamID(id)
	if name == "" {
		name = model.DefaultTeamName
	}

	ch := c.newChange()
	player = ch.stage(player)
	if err := c.leaveCurrentTeam(ctx, ch, player); err != nil {
		return nil, err
	}

	team := &model.Team{
		ID:        teamID,
		Name:      name,
		GameID:    gameID,
		OwnerID:   creatorID,
		CreatedAt: ch.now,
	}
	ch.batch.SaveTeams = append(ch.batch.SaveTeams, team)
	player.TeamID = &teamID
	ch.emit(model.EventTeamCreated, gameID, &teamID, creatorID)

	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}

	c.logger.Info("team created",
		slog.String("game_id", gameID.String()),
		slog.String("team_id", teamID.String()),
		slog.String("owner_id", creatorID.String()))
	return c.teamView(ctx, team)
}

// JoinTeam adds the player to the team. Any reference that cannot be
// resolved is reported as a failed precondition, not as not found.
func (c *Coordinator) JoinTeam(ctx context.Context, gameID model.GameID, teamID model.TeamID, playerID model.PlayerID) (*model.TeamView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, model.Precondition(err)
	}
	team, err := c.storage.GetTeam(ctx, teamID)
	if err != nil {
		return nil, model.Precondition(err)
	}
	if team.GameID != gameID {
		return nil, model.ErrTeamNotInGame
	}
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, model.Precondition(err)
	}
	if player.InTeam(teamID) {
		return nil, model.ErrAlreadyInTeam
	}
	if !player.InGame(team.GameID) {
		return nil, model.ErrNotInGame
	}

	ch := c.newChange()
	player = ch.stage(player)
	if err := c.leaveCurrentTeam(ctx, ch, player); err != nil {
		return nil, err
	}
	player.TeamID = &teamID
	ch.emit(model.EventTeamJoined, gameID, &teamID, playerID)

	if err := c.commit(ctx, ch); err != nil {
		return nil, err
	}
	return c.teamView(ctx, team)
}

// LeaveTeam removes the player from the team. If the player owns the team,
// the team is disbanded and every member's team reference cleared.
func (c *Coordinator) LeaveTeam(ctx context.Context, gameID model.GameID, teamID model.TeamID, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.teamInGame(ctx, gameID, teamID); err != nil {
		return err
	}
	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return model.Precondition(err)
	}
	if !player.InGame(gameID) {
		return model.ErrNotInGame
	}
	if !player.InTeam(teamID) {
		return model.ErrNotInTeam
	}

	ch := c.newChange()
	if err := c.leaveCurrentTeam(ctx, ch, ch.stage(player)); err != nil {
		return err
	}
	return c.commit(ctx, ch)
}

// DeleteTeam disbands the team if requesterID owns it
func (c *Coordinator) DeleteTeam(ctx context.Context, gameID model.GameID, teamID model.TeamID, requesterID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	team, err := c.teamInGame(ctx, gameID, teamID)
	if err != nil {
		return err
	}
	if _, err := c.storage.GetPlayer(ctx, requesterID); err != nil {
		return err
	}
	// Ownership is plain id equality; callers are not authenticated.
	if team.OwnerID != requesterID {
		return model.ErrNotTeamOwner
	}

	ch := c.newChange()
	if err := c.disbandTeam(ctx, ch, team); err != nil {
		return err
	}
	return c.commit(ctx, ch)
}

// GetTeam returns the team with its owner and members
func (c *Coordinator) GetTeam(ctx context.Context, gameID model.GameID, teamID model.TeamID) (*model.TeamView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	team, err := c.teamInGame(ctx, gameID, teamID)
	if err != nil {
		return nil, err
	}
	return c.teamView(ctx, team)
}

// ListTeams returns the teams of one game, or of every game when gameID is
// nil. An unknown game has no teams.
func (c *Coordinator) ListTeams(ctx context.Context, gameID *model.GameID) ([]*model.TeamView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		teams []*model.Team
		err   error
	)
	if gameID == nil {
		teams, err = c.storage.ListTeams(ctx)
	} else {
		teams, err = c.storage.ListTeamsInGame(ctx, *gameID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*model.TeamView, 0, len(teams))
	for _, t := range teams {
		v, err := c.teamView(ctx, t)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// teamInGame resolves a game and one of its teams. A team belonging to a
// different game is reported as not found.
func (c *Coordinator) teamInGame(ctx context.Context, gameID model.GameID, teamID model.TeamID) (*model.Team, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	team, err := c.storage.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.GameID != gameID {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}
