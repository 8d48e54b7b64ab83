// Package storagetest holds behaviour tests shared by every storage backend.
// A backend test suite embeds Suite and assigns Storage in its SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var created = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func gameRef(id model.GameID) *model.GameID { return &id }
func teamRef(id model.TeamID) *model.TeamID { return &id }

func (s *Suite) ctx() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

func (s *Suite) apply(b *storage.Batch) {
	s.Require().NoError(s.Storage.Apply(s.ctx(), b))
}

// seedGameWithTeam stores game 1 owned by player 1 with team 1, and player 1
// as a member of both
func (s *Suite) seedGameWithTeam() {
	s.apply(&storage.Batch{
		SaveGames:   []*model.Game{{ID: 1, Name: "game1", OwnerID: 1, CreatedAt: created}},
		SaveTeams:   []*model.Team{{ID: 1, Name: "red", GameID: 1, OwnerID: 1, CreatedAt: created}},
		SavePlayers: []*model.Player{{ID: 1, Name: "alice", GameID: gameRef(1), TeamID: teamRef(1), CreatedAt: created}},
	})
}

func (s *Suite) TestNextIDSequencesAreIndependent() {
	ctx := s.ctx()

	p1, err := s.Storage.NextID(ctx, storage.KindPlayer)
	s.Require().NoError(err)
	p2, err := s.Storage.NextID(ctx, storage.KindPlayer)
	s.Require().NoError(err)
	g1, err := s.Storage.NextID(ctx, storage.KindGame)
	s.Require().NoError(err)

	s.Equal(int64(1), p1)
	s.Equal(int64(2), p2)
	s.Equal(int64(1), g1)
}

func (s *Suite) TestGetMissingRecords() {
	ctx := s.ctx()

	_, err := s.Storage.GetPlayer(ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.Storage.GetGame(ctx, 99)
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.Storage.GetTeam(ctx, 99)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *Suite) TestApplyEmptyBatch() {
	s.apply(&storage.Batch{})

	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestSaveAndGet() {
	s.seedGameWithTeam()
	ctx := s.ctx()

	player, err := s.Storage.GetPlayer(ctx, 1)
	s.Require().NoError(err)
	s.Equal("alice", player.Name)
	s.True(player.InGame(1))
	s.True(player.InTeam(1))

	game, err := s.Storage.GetGame(ctx, 1)
	s.Require().NoError(err)
	s.Equal("game1", game.Name)
	s.Equal(model.PlayerID(1), game.OwnerID)

	team, err := s.Storage.GetTeam(ctx, 1)
	s.Require().NoError(err)
	s.Equal("red", team.Name)
	s.Equal(model.GameID(1), team.GameID)
}

func (s *Suite) TestListsAreOrderedByID() {
	players := make([]*model.Player, 0, 12)
	for i := 12; i >= 1; i-- {
		players = append(players, &model.Player{ID: model.PlayerID(i), Name: "p", CreatedAt: created})
	}
	s.apply(&storage.Batch{SavePlayers: players})

	listed, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(listed, 12)
	for i, p := range listed {
		s.Equal(model.PlayerID(i+1), p.ID)
	}
}

func (s *Suite) TestMembershipListsFollowPlayerMoves() {
	s.seedGameWithTeam()
	ctx := s.ctx()

	s.apply(&storage.Batch{
		SaveGames:   []*model.Game{{ID: 2, Name: "game2", OwnerID: 1, CreatedAt: created}},
		SavePlayers: []*model.Player{{ID: 2, Name: "bob", GameID: gameRef(1), TeamID: teamRef(1), CreatedAt: created}},
	})

	inGame, err := s.Storage.ListPlayersInGame(ctx, 1)
	s.Require().NoError(err)
	s.Len(inGame, 2)

	// Move alice to game 2 without a team
	s.apply(&storage.Batch{
		SavePlayers: []*model.Player{{ID: 1, Name: "alice", GameID: gameRef(2), CreatedAt: created}},
	})

	inGame, err = s.Storage.ListPlayersInGame(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(inGame, 1)
	s.Equal(model.PlayerID(2), inGame[0].ID)

	inTeam, err := s.Storage.ListPlayersInTeam(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(inTeam, 1)
	s.Equal(model.PlayerID(2), inTeam[0].ID)

	inGame2, err := s.Storage.ListPlayersInGame(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(inGame2, 1)
	s.Equal(model.PlayerID(1), inGame2[0].ID)
}

func (s *Suite) TestListTeamsInGame() {
	s.seedGameWithTeam()
	ctx := s.ctx()

	s.apply(&storage.Batch{
		SaveGames: []*model.Game{{ID: 2, Name: "game2", OwnerID: 1, CreatedAt: created}},
		SaveTeams: []*model.Team{
			{ID: 2, Name: "blue", GameID: 1, OwnerID: 1, CreatedAt: created},
			{ID: 3, Name: "green", GameID: 2, OwnerID: 1, CreatedAt: created},
		},
	})

	teams, err := s.Storage.ListTeamsInGame(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal(model.TeamID(1), teams[0].ID)
	s.Equal(model.TeamID(2), teams[1].ID)

	all, err := s.Storage.ListTeams(ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	none, err := s.Storage.ListTeamsInGame(ctx, 42)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *Suite) TestDeleteTeamAndGameInOneBatch() {
	s.seedGameWithTeam()
	ctx := s.ctx()

	s.apply(&storage.Batch{
		SavePlayers: []*model.Player{{ID: 1, Name: "alice", CreatedAt: created}},
		DeleteTeams: []model.TeamID{1},
		DeleteGames: []model.GameID{1},
	})

	_, err := s.Storage.GetTeam(ctx, 1)
	s.ErrorIs(err, model.ErrTeamNotFound)
	_, err = s.Storage.GetGame(ctx, 1)
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.Storage.ListGames(ctx)
	s.Require().NoError(err)
	s.Empty(games)
	teams, err := s.Storage.ListTeams(ctx)
	s.Require().NoError(err)
	s.Empty(teams)

	player, err := s.Storage.GetPlayer(ctx, 1)
	s.Require().NoError(err)
	s.Nil(player.GameID)
	s.Nil(player.TeamID)

	inGame, err := s.Storage.ListPlayersInGame(ctx, 1)
	s.Require().NoError(err)
	s.Empty(inGame)
}

func (s *Suite) TestReturnedRecordsAreCopies() {
	s.seedGameWithTeam()
	ctx := s.ctx()

	player, err := s.Storage.GetPlayer(ctx, 1)
	s.Require().NoError(err)
	player.Name = "mallory"
	player.ClearMembership()

	again, err := s.Storage.GetPlayer(ctx, 1)
	s.Require().NoError(err)
	s.Equal("alice", again.Name)
	s.True(again.InTeam(1))
}
