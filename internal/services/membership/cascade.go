package membership

import (
	"context"
	"errors"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// disbandTeam stages removal of the team and clears the team reference of
// every member
func (c *Coordinator) disbandTeam(ctx context.Context, ch *change, team *model.Team) error {
	members, err := c.storage.ListPlayersInTeam(ctx, team.ID)
	if err != nil {
		return err
	}
	for _, m := range members {
		ch.stage(m).ClearTeam()
	}
	ch.batch.DeleteTeams = append(ch.batch.DeleteTeams, team.ID)
	ch.emit(model.EventTeamDisbanded, team.GameID, &team.ID, team.OwnerID)
	return nil
}

// leaveCurrentTeam detaches a staged player from its team. If the player
// owns the team, the team is disbanded instead.
func (c *Coordinator) leaveCurrentTeam(ctx context.Context, ch *change, player *model.Player) error {
	if player.TeamID == nil {
		return nil
	}
	teamID := *player.TeamID

	team, err := c.storage.GetTeam(ctx, teamID)
	if errors.Is(err, model.ErrTeamNotFound) {
		// Dangling reference; drop it
		player.ClearTeam()
		return nil
	}
	if err != nil {
		return err
	}

	if team.OwnerID == player.ID {
		return c.disbandTeam(ctx, ch, team)
	}
	player.ClearTeam()
	ch.emit(model.EventTeamLeft, team.GameID, &teamID, player.ID)
	return nil
}

// leaveCurrentGame detaches a staged player from its game. Team departure
// (and any disband it triggers) is staged before the game reference is
// cleared.
func (c *Coordinator) leaveCurrentGame(ctx context.Context, ch *change, player *model.Player) error {
	if player.GameID == nil {
		return nil
	}
	gameID := *player.GameID

	if err := c.leaveCurrentTeam(ctx, ch, player); err != nil {
		return err
	}
	player.ClearMembership()
	ch.emit(model.EventPlayerLeft, gameID, nil, player.ID)
	return nil
}
