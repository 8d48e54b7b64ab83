package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/miikama/game-lobby-REST-backend/internal/dependencies/mocks"
	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage/memory"
	"github.com/miikama/game-lobby-REST-backend/internal/testutil"
)

type recordingPublisher struct {
	events []model.Event
}

func (p *recordingPublisher) Publish(ev model.Event) {
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []model.EventType {
	types := make([]model.EventType, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	events      *recordingPublisher
	coordinator *Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.events = &recordingPublisher{}
	s.coordinator = NewCoordinator(s.storage, s.clock, s.events, testutil.NopLogger())
	s.ctx = context.Background()
}

// TearDownTest checks that every player's team belongs to the player's game
func (s *CoordinatorSuite) TearDownTest() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	for _, p := range players {
		if p.TeamID == nil {
			continue
		}
		s.Require().NotNil(p.GameID, "player %d has a team but no game", p.ID)
		team, err := s.storage.GetTeam(s.ctx, *p.TeamID)
		s.Require().NoError(err, "player %d references a missing team", p.ID)
		s.Equal(team.GameID, *p.GameID, "player %d team is in another game", p.ID)
	}
}

func (s *CoordinatorSuite) createPlayer(name string) *model.Player {
	p, err := s.coordinator.CreatePlayer(s.ctx, name)
	s.Require().NoError(err)
	return p
}

func (s *CoordinatorSuite) createGame(owner *model.Player) *model.Game {
	g, err := s.coordinator.CreateGame(s.ctx, owner.ID, "")
	s.Require().NoError(err)
	return g.Game
}

func (s *CoordinatorSuite) join(g *model.Game, p *model.Player) {
	_, err := s.coordinator.JoinGame(s.ctx, g.ID, p.ID)
	s.Require().NoError(err)
}

func (s *CoordinatorSuite) createTeam(g *model.Game, p *model.Player, name string) *model.Team {
	t, err := s.coordinator.CreateTeam(s.ctx, g.ID, p.ID, name)
	s.Require().NoError(err)
	return t.Team
}

func (s *CoordinatorSuite) reload(p *model.Player) *model.Player {
	fresh, err := s.storage.GetPlayer(s.ctx, p.ID)
	s.Require().NoError(err)
	return fresh
}

// Player registry

func (s *CoordinatorSuite) TestCreatePlayer() {
	p := s.createPlayer("alice")

	s.Equal(model.PlayerID(1), p.ID)
	s.Equal("alice", p.Name)
	s.Nil(p.GameID)
	s.Nil(p.TeamID)
	s.Equal(s.clock.Now(), p.CreatedAt)
}

func (s *CoordinatorSuite) TestCreatePlayerDefaultName() {
	p := s.createPlayer("")
	s.Equal(model.DefaultPlayerName, p.Name)
}

func (s *CoordinatorSuite) TestCreatePlayerIDsAreUnique() {
	a := s.createPlayer("a")
	b := s.createPlayer("b")
	s.NotEqual(a.ID, b.ID)
}

func (s *CoordinatorSuite) TestRenamePlayer() {
	p := s.createPlayer("alice")

	renamed, err := s.coordinator.RenamePlayer(s.ctx, p.ID, "alicia")
	s.Require().NoError(err)
	s.Equal("alicia", renamed.Name)
	s.Equal("alicia", s.reload(p).Name)
}

func (s *CoordinatorSuite) TestRenamePlayerKeepsMembership() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)

	_, err := s.coordinator.RenamePlayer(s.ctx, owner.ID, "boss")
	s.Require().NoError(err)
	s.True(s.reload(owner).InGame(g.ID))
}

func (s *CoordinatorSuite) TestRenamePlayerNotFound() {
	_, err := s.coordinator.RenamePlayer(s.ctx, 42, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *CoordinatorSuite) TestListPlayersInCreationOrder() {
	s.createPlayer("a")
	s.createPlayer("b")
	s.createPlayer("c")

	players, err := s.coordinator.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("a", players[0].Name)
	s.Equal("c", players[2].Name)
}

// Game lifecycle

func (s *CoordinatorSuite) TestCreateGameDoesNotEnrollOwner() {
	owner := s.createPlayer("owner")

	view, err := s.coordinator.CreateGame(s.ctx, owner.ID, "")
	s.Require().NoError(err)

	s.Equal("game1", view.Game.Name)
	s.Equal(owner.ID, view.Owner.ID)
	s.Empty(view.Players)
	s.Empty(view.Teams)
	s.Nil(s.reload(owner).GameID)
}

func (s *CoordinatorSuite) TestCreateGameWithName() {
	owner := s.createPlayer("owner")

	view, err := s.coordinator.CreateGame(s.ctx, owner.ID, "friday")
	s.Require().NoError(err)
	s.Equal("friday", view.Game.Name)
}

func (s *CoordinatorSuite) TestCreateGameDefaultNamesAreUnique() {
	owner := s.createPlayer("owner")
	a := s.createGame(owner)
	b := s.createGame(owner)
	s.NotEqual(a.Name, b.Name)
}

func (s *CoordinatorSuite) TestCreateGameUnknownOwner() {
	_, err := s.coordinator.CreateGame(s.ctx, 42, "")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	games, err := s.coordinator.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *CoordinatorSuite) TestJoinGame() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	view, err := s.coordinator.JoinGame(s.ctx, g.ID, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(view.Players, 1)
	s.Equal(owner.ID, view.Players[0].ID)
	s.True(s.reload(owner).InGame(g.ID))
}

func (s *CoordinatorSuite) TestJoinGameTwiceFails() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)

	_, err := s.coordinator.JoinGame(s.ctx, g.ID, owner.ID)
	s.ErrorIs(err, model.ErrAlreadyInGame)

	view, err := s.coordinator.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(view.Players, 1)
}

func (s *CoordinatorSuite) TestJoinGameNotFound() {
	p := s.createPlayer("p")
	g := s.createGame(p)

	_, err := s.coordinator.JoinGame(s.ctx, 99, p.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.coordinator.JoinGame(s.ctx, g.ID, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestJoinOtherGameLeavesPrevious() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g1 := s.createGame(owner)
	g2 := s.createGame(owner)
	s.join(g1, owner)
	s.join(g1, member)
	s.createTeam(g1, owner, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g1.ID, 1, member.ID)
	s.Require().NoError(err)

	// Owner moves to the other game; their team is disbanded on the way out
	s.join(g2, owner)

	fresh := s.reload(owner)
	s.True(fresh.InGame(g2.ID))
	s.Nil(fresh.TeamID)

	_, err = s.storage.GetTeam(s.ctx, 1)
	s.ErrorIs(err, model.ErrTeamNotFound)

	m := s.reload(member)
	s.True(m.InGame(g1.ID))
	s.Nil(m.TeamID)
}

func (s *CoordinatorSuite) TestLeaveGame() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)

	err := s.coordinator.LeaveGame(s.ctx, g.ID, owner.ID)
	s.Require().NoError(err)
	s.Nil(s.reload(owner).GameID)

	view, err := s.coordinator.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(view.Players)
}

func (s *CoordinatorSuite) TestLeaveGameNotMember() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	err := s.coordinator.LeaveGame(s.ctx, g.ID, owner.ID)
	s.ErrorIs(err, model.ErrNotInGame)
	s.ErrorIs(err, model.ErrPreconditionFailed)
}

func (s *CoordinatorSuite) TestLeaveGameMemberOfOtherGame() {
	owner := s.createPlayer("owner")
	g1 := s.createGame(owner)
	g2 := s.createGame(owner)
	s.join(g2, owner)

	err := s.coordinator.LeaveGame(s.ctx, g1.ID, owner.ID)
	s.ErrorIs(err, model.ErrNotInGame)
	s.True(s.reload(owner).InGame(g2.ID))
}

func (s *CoordinatorSuite) TestLeaveGameNotFound() {
	p := s.createPlayer("p")
	g := s.createGame(p)

	s.ErrorIs(s.coordinator.LeaveGame(s.ctx, 99, p.ID), model.ErrGameNotFound)
	s.ErrorIs(s.coordinator.LeaveGame(s.ctx, g.ID, 99), model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestLeaveGameAsTeamOwnerDisbandsTeam() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.LeaveGame(s.ctx, g.ID, owner.ID))

	_, err = s.storage.GetTeam(s.ctx, team.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)

	o := s.reload(owner)
	s.Nil(o.GameID)
	s.Nil(o.TeamID)

	m := s.reload(member)
	s.True(m.InGame(g.ID))
	s.Nil(m.TeamID)

	// Disband is published before the owner's departure
	types := s.events.types()
	s.Equal([]model.EventType{model.EventTeamDisbanded, model.EventPlayerLeft}, types[len(types)-2:])
}

func (s *CoordinatorSuite) TestLeaveGameAsTeamMemberKeepsTeam() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.LeaveGame(s.ctx, g.ID, member.ID))

	view, err := s.coordinator.GetTeam(s.ctx, g.ID, team.ID)
	s.Require().NoError(err)
	s.Require().Len(view.Players, 1)
	s.Equal(owner.ID, view.Players[0].ID)
}

func (s *CoordinatorSuite) TestDeleteGameCascade() {
	owner := s.createPlayer("owner")
	p2 := s.createPlayer("p2")
	p3 := s.createPlayer("p3")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, p2)
	s.join(g, p3)
	t1 := s.createTeam(g, owner, "red")
	s.createTeam(g, p2, "blue")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, t1.ID, p3.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.DeleteGame(s.ctx, g.ID, owner.ID))

	_, err = s.coordinator.GetGame(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	teams, err := s.coordinator.ListTeams(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(teams)

	for _, p := range []*model.Player{owner, p2, p3} {
		fresh := s.reload(p)
		s.Nil(fresh.GameID)
		s.Nil(fresh.TeamID)
	}
}

func (s *CoordinatorSuite) TestDeleteGameByNonOwner() {
	owner := s.createPlayer("owner")
	other := s.createPlayer("other")
	g := s.createGame(owner)
	s.join(g, other)

	err := s.coordinator.DeleteGame(s.ctx, g.ID, other.ID)
	s.ErrorIs(err, model.ErrNotGameOwner)
	s.ErrorIs(err, model.ErrUnauthorized)

	view, err := s.coordinator.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(view.Players, 1)
}

func (s *CoordinatorSuite) TestDeleteGameNotFound() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	s.ErrorIs(s.coordinator.DeleteGame(s.ctx, 99, owner.ID), model.ErrGameNotFound)
	s.ErrorIs(s.coordinator.DeleteGame(s.ctx, g.ID, 99), model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestOwnerCanDeleteWithoutBeingMember() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	s.Require().NoError(s.coordinator.DeleteGame(s.ctx, g.ID, owner.ID))
}

func (s *CoordinatorSuite) TestListGames() {
	owner := s.createPlayer("owner")
	s.createGame(owner)
	s.createGame(owner)

	games, err := s.coordinator.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("game1", games[0].Game.Name)
	s.Equal("game2", games[1].Game.Name)
}

// Team lifecycle

func (s *CoordinatorSuite) TestCreateTeam() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)

	view, err := s.coordinator.CreateTeam(s.ctx, g.ID, owner.ID, "red")
	s.Require().NoError(err)
	s.Equal("red", view.Team.Name)
	s.Equal(g.ID, view.Team.GameID)
	s.Equal(owner.ID, view.Owner.ID)
	s.Require().Len(view.Players, 1)
	s.Equal(owner.ID, view.Players[0].ID)
	s.True(s.reload(owner).InTeam(view.Team.ID))
}

func (s *CoordinatorSuite) TestCreateTeamDefaultName() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)

	team := s.createTeam(g, owner, "")
	s.Equal(model.DefaultTeamName, team.Name)
}

func (s *CoordinatorSuite) TestCreateTeamRequiresMembership() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	_, err := s.coordinator.CreateTeam(s.ctx, g.ID, owner.ID, "red")
	s.ErrorIs(err, model.ErrNotInGame)

	teams, err := s.coordinator.ListTeams(s.ctx, &g.ID)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *CoordinatorSuite) TestCreateTeamNotFound() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)

	_, err := s.coordinator.CreateTeam(s.ctx, 99, owner.ID, "red")
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.coordinator.CreateTeam(s.ctx, g.ID, 99, "red")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestCreateSecondTeamDisbandsOwnedTeam() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)
	first := s.createTeam(g, owner, "red")

	second := s.createTeam(g, owner, "blue")

	_, err := s.storage.GetTeam(s.ctx, first.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
	s.True(s.reload(owner).InTeam(second.ID))
}

func (s *CoordinatorSuite) TestJoinTeam() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")

	view, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, member.ID)
	s.Require().NoError(err)
	s.Len(view.Players, 2)
	s.True(s.reload(member).InTeam(team.ID))
}

func (s *CoordinatorSuite) TestJoinTeamByCreatorFails() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)
	team := s.createTeam(g, owner, "red")

	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, owner.ID)
	s.ErrorIs(err, model.ErrAlreadyInTeam)
}

func (s *CoordinatorSuite) TestJoinTeamRequiresGameMembership() {
	owner := s.createPlayer("owner")
	outsider := s.createPlayer("outsider")
	g := s.createGame(owner)
	s.join(g, owner)
	team := s.createTeam(g, owner, "red")

	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, outsider.ID)
	s.ErrorIs(err, model.ErrNotInGame)
	s.Nil(s.reload(outsider).TeamID)
}

func (s *CoordinatorSuite) TestJoinTeamUnresolvedIsPrecondition() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)
	team := s.createTeam(g, owner, "red")

	cases := []struct {
		name   string
		gameID model.GameID
		teamID model.TeamID
		player model.PlayerID
	}{
		{"unknown game", 99, team.ID, owner.ID},
		{"unknown team", g.ID, 99, owner.ID},
		{"unknown player", g.ID, team.ID, 99},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.coordinator.JoinTeam(s.ctx, tc.gameID, tc.teamID, tc.player)
			s.ErrorIs(err, model.ErrPreconditionFailed)
			s.NotErrorIs(err, model.ErrNotFound)
		})
	}
}

func (s *CoordinatorSuite) TestJoinTeamOfOtherGame() {
	owner := s.createPlayer("owner")
	g1 := s.createGame(owner)
	g2 := s.createGame(owner)
	s.join(g1, owner)
	team := s.createTeam(g1, owner, "red")

	_, err := s.coordinator.JoinTeam(s.ctx, g2.ID, team.ID, owner.ID)
	s.ErrorIs(err, model.ErrTeamNotInGame)
	s.ErrorIs(err, model.ErrPreconditionFailed)
}

func (s *CoordinatorSuite) TestJoinTeamSwitchesTeams() {
	p1 := s.createPlayer("p1")
	p2 := s.createPlayer("p2")
	p3 := s.createPlayer("p3")
	g := s.createGame(p1)
	s.join(g, p1)
	s.join(g, p2)
	s.join(g, p3)
	red := s.createTeam(g, p1, "red")
	blue := s.createTeam(g, p2, "blue")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, red.ID, p3.ID)
	s.Require().NoError(err)

	_, err = s.coordinator.JoinTeam(s.ctx, g.ID, blue.ID, p3.ID)
	s.Require().NoError(err)

	s.True(s.reload(p3).InTeam(blue.ID))
	redView, err := s.coordinator.GetTeam(s.ctx, g.ID, red.ID)
	s.Require().NoError(err)
	s.Len(redView.Players, 1)
}

func (s *CoordinatorSuite) TestLeaveTeamAsMember() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.LeaveTeam(s.ctx, g.ID, team.ID, member.ID))

	m := s.reload(member)
	s.Nil(m.TeamID)
	s.True(m.InGame(g.ID))

	view, err := s.coordinator.GetTeam(s.ctx, g.ID, team.ID)
	s.Require().NoError(err)
	s.Len(view.Players, 1)
}

func (s *CoordinatorSuite) TestOwnerLeavingTeamDisbandsIt() {
	p1 := s.createPlayer("p1")
	p2 := s.createPlayer("p2")
	g := s.createGame(p1)
	s.join(g, p1)
	s.join(g, p2)
	team := s.createTeam(g, p1, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, p2.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.LeaveTeam(s.ctx, g.ID, team.ID, p1.ID))

	_, err = s.coordinator.GetTeam(s.ctx, g.ID, team.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
	s.Nil(s.reload(p1).TeamID)
	s.Nil(s.reload(p2).TeamID)
	s.True(s.reload(p2).InGame(g.ID))
}

func (s *CoordinatorSuite) TestLeaveTeamNotMember() {
	owner := s.createPlayer("owner")
	other := s.createPlayer("other")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, other)
	team := s.createTeam(g, owner, "red")

	err := s.coordinator.LeaveTeam(s.ctx, g.ID, team.ID, other.ID)
	s.ErrorIs(err, model.ErrNotInTeam)
	s.ErrorIs(err, model.ErrPreconditionFailed)
}

func (s *CoordinatorSuite) TestLeaveTeamErrors() {
	owner := s.createPlayer("owner")
	outsider := s.createPlayer("outsider")
	g := s.createGame(owner)
	s.join(g, owner)
	team := s.createTeam(g, owner, "red")

	s.ErrorIs(s.coordinator.LeaveTeam(s.ctx, 99, team.ID, owner.ID), model.ErrGameNotFound)
	s.ErrorIs(s.coordinator.LeaveTeam(s.ctx, g.ID, 99, owner.ID), model.ErrTeamNotFound)

	err := s.coordinator.LeaveTeam(s.ctx, g.ID, team.ID, 99)
	s.ErrorIs(err, model.ErrPreconditionFailed)
	s.NotErrorIs(err, model.ErrNotFound)

	s.ErrorIs(s.coordinator.LeaveTeam(s.ctx, g.ID, team.ID, outsider.ID), model.ErrNotInGame)
}

func (s *CoordinatorSuite) TestDeleteTeam() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")
	_, err := s.coordinator.JoinTeam(s.ctx, g.ID, team.ID, member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.DeleteTeam(s.ctx, g.ID, team.ID, owner.ID))

	_, err = s.coordinator.GetTeam(s.ctx, g.ID, team.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
	s.Nil(s.reload(owner).TeamID)
	s.Nil(s.reload(member).TeamID)
	s.True(s.reload(member).InGame(g.ID))
}

func (s *CoordinatorSuite) TestDeleteTeamByNonOwner() {
	owner := s.createPlayer("owner")
	member := s.createPlayer("member")
	g := s.createGame(owner)
	s.join(g, owner)
	s.join(g, member)
	team := s.createTeam(g, owner, "red")

	err := s.coordinator.DeleteTeam(s.ctx, g.ID, team.ID, member.ID)
	s.ErrorIs(err, model.ErrNotTeamOwner)

	_, err = s.coordinator.GetTeam(s.ctx, g.ID, team.ID)
	s.NoError(err)
}

func (s *CoordinatorSuite) TestDeleteTeamNotFound() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	g2 := s.createGame(owner)
	s.join(g, owner)
	team := s.createTeam(g, owner, "red")

	s.ErrorIs(s.coordinator.DeleteTeam(s.ctx, 99, team.ID, owner.ID), model.ErrGameNotFound)
	s.ErrorIs(s.coordinator.DeleteTeam(s.ctx, g.ID, 99, owner.ID), model.ErrTeamNotFound)
	s.ErrorIs(s.coordinator.DeleteTeam(s.ctx, g2.ID, team.ID, owner.ID), model.ErrTeamNotFound)
	s.ErrorIs(s.coordinator.DeleteTeam(s.ctx, g.ID, team.ID, 99), model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestListTeamsFiltersByGame() {
	owner := s.createPlayer("owner")
	other := s.createPlayer("other")
	g1 := s.createGame(owner)
	g2 := s.createGame(other)
	s.join(g1, owner)
	s.join(g2, other)
	s.createTeam(g1, owner, "red")
	s.createTeam(g2, other, "blue")

	teams, err := s.coordinator.ListTeams(s.ctx, &g1.ID)
	s.Require().NoError(err)
	s.Require().Len(teams, 1)
	s.Equal("red", teams[0].Team.Name)

	all, err := s.coordinator.ListTeams(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 2)

	unknown := model.GameID(99)
	none, err := s.coordinator.ListTeams(s.ctx, &unknown)
	s.Require().NoError(err)
	s.Empty(none)
}

// Scenarios

func (s *CoordinatorSuite) TestRoundTripPlayerGameTeam() {
	p := s.createPlayer("P")
	g := s.createGame(p)
	s.join(g, p)
	s.createTeam(g, p, "T")

	view, err := s.coordinator.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(view.Players, 1)
	s.Equal(p.ID, view.Players[0].ID)
	s.Require().Len(view.Teams, 1)
	s.Equal("T", view.Teams[0].Team.Name)
	s.Require().Len(view.Teams[0].Players, 1)
	s.Equal(p.ID, view.Teams[0].Players[0].ID)
}

func (s *CoordinatorSuite) TestEventsPublishedForTransitions() {
	p := s.createPlayer("P")
	g := s.createGame(p)
	s.join(g, p)
	team := s.createTeam(g, p, "T")
	s.Require().NoError(s.coordinator.DeleteGame(s.ctx, g.ID, p.ID))

	s.Equal([]model.EventType{
		model.EventPlayerJoined,
		model.EventTeamCreated,
		model.EventTeamDisbanded,
		model.EventGameDeleted,
	}, s.events.types())

	created := s.events.events[1]
	s.Equal(g.ID, created.GameID)
	s.Require().NotNil(created.TeamID)
	s.Equal(team.ID, *created.TeamID)
	s.Equal(s.clock.Now(), created.Timestamp)
}

func (s *CoordinatorSuite) TestRejectedTransitionPublishesNothing() {
	owner := s.createPlayer("owner")
	g := s.createGame(owner)
	s.join(g, owner)
	before := len(s.events.events)

	_, err := s.coordinator.JoinGame(s.ctx, g.ID, owner.ID)
	s.Require().Error(err)
	s.Len(s.events.events, before)
}
