package postgres

import (
	"time"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// Table rows. Ids are allocated from sequences by NextID, never by the
// table itself.

type playerRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	GameID    *int64 `gorm:"index"`
	TeamID    *int64 `gorm:"index"`
	CreatedAt time.Time
}

func (playerRecord) TableName() string { return "players" }

type gameRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	OwnerID   int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (gameRecord) TableName() string { return "games" }

type teamRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null"`
	GameID    int64  `gorm:"not null;index"`
	OwnerID   int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (teamRecord) TableName() string { return "teams" }

func toPlayerRecord(p *model.Player) playerRecord {
	r := playerRecord{ID: int64(p.ID), Name: p.Name, CreatedAt: p.CreatedAt}
	if p.GameID != nil {
		g := int64(*p.GameID)
		r.GameID = &g
	}
	if p.TeamID != nil {
		t := int64(*p.TeamID)
		r.TeamID = &t
	}
	return r
}

func (r *playerRecord) toModel() *model.Player {
	p := &model.Player{ID: model.PlayerID(r.ID), Name: r.Name, CreatedAt: r.CreatedAt}
	if r.GameID != nil {
		g := model.GameID(*r.GameID)
		p.GameID = &g
	}
	if r.TeamID != nil {
		t := model.TeamID(*r.TeamID)
		p.TeamID = &t
	}
	return p
}

func toGameRecord(g *model.Game) gameRecord {
	return gameRecord{ID: int64(g.ID), Name: g.Name, OwnerID: int64(g.OwnerID), CreatedAt: g.CreatedAt}
}

func (r *gameRecord) toModel() *model.Game {
	return &model.Game{
		ID:        model.GameID(r.ID),
		Name:      r.Name,
		OwnerID:   model.PlayerID(r.OwnerID),
		CreatedAt: r.CreatedAt,
	}
}

func toTeamRecord(t *model.Team) teamRecord {
	return teamRecord{
		ID:        int64(t.ID),
		Name:      t.Name,
		GameID:    int64(t.GameID),
		OwnerID:   int64(t.OwnerID),
		CreatedAt: t.CreatedAt,
	}
}

func (r *teamRecord) toModel() *model.Team {
	return &model.Team{
		ID:        model.TeamID(r.ID),
		Name:      r.Name,
		GameID:    model.GameID(r.GameID),
		OwnerID:   model.PlayerID(r.OwnerID),
		CreatedAt: r.CreatedAt,
	}
}
