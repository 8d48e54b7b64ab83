package membership

import (
	"context"
	"errors"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

func (c *Coordinator) gameView(ctx context.Context, game *model.Game) (*model.GameView, error) {
	owner, err := c.owner(ctx, game.OwnerID)
	if err != nil {
		return nil, err
	}
	players, err := c.storage.ListPlayersInGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	teams, err := c.storage.ListTeamsInGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	view := &model.GameView{
		Game:    game,
		Owner:   owner,
		Players: players,
		Teams:   make([]*model.TeamView, 0, len(teams)),
	}
	for _, t := range teams {
		tv, err := c.teamView(ctx, t)
		if err != nil {
			return nil, err
		}
		view.Teams = append(view.Teams, tv)
	}
	return view, nil
}

func (c *Coordinator) teamView(ctx context.Context, team *model.Team) (*model.TeamView, error) {
	owner, err := c.owner(ctx, team.OwnerID)
	if err != nil {
		return nil, err
	}
	players, err := c.storage.ListPlayersInTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &model.TeamView{Team: team, Owner: owner, Players: players}, nil
}

// owner resolves an owner reference; a missing owner yields nil
func (c *Coordinator) owner(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	p, err := c.storage.GetPlayer(ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil, nil
	}
	return p, err
}
