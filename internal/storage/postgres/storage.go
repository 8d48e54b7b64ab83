package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// Storage is a Postgres implementation of the storage interface using GORM.
// Each Apply runs in a single transaction.
type Storage struct {
	db *gorm.DB
}

// New opens a connection pool, migrates the schema and returns the storage
func New(cfg Config) (*Storage, error) {
	level := cfg.LogLevel
	if level == 0 {
		level = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// NewWithDB wraps an already migrated GORM handle
func NewWithDB(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextID(ctx context.Context, kind storage.Kind) (int64, error) {
	seq, ok := sequences[kind]
	if !ok {
		return 0, fmt.Errorf("unknown sequence %q", kind)
	}
	var id int64
	if err := s.db.WithContext(ctx).Raw("SELECT nextval(?)", seq).Scan(&id).Error; err != nil {
		return 0, fmt.Errorf("nextval %s: %w", seq, err)
	}
	return id, nil
}

func (s *Storage) Apply(ctx context.Context, batch *storage.Batch) error {
	if batch.Empty() {
		return nil
	}

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(batch.SaveGames) > 0 {
			rows := make([]gameRecord, len(batch.SaveGames))
			for i, g := range batch.SaveGames {
				rows[i] = toGameRecord(g)
			}
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("save games: %w", err)
			}
		}

		if len(batch.SaveTeams) > 0 {
			rows := make([]teamRecord, len(batch.SaveTeams))
			for i, t := range batch.SaveTeams {
				rows[i] = toTeamRecord(t)
			}
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("save teams: %w", err)
			}
		}

		if len(batch.SavePlayers) > 0 {
			rows := make([]playerRecord, len(batch.SavePlayers))
			for i, p := range batch.SavePlayers {
				rows[i] = toPlayerRecord(p)
			}
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("save players: %w", err)
			}
		}

		if len(batch.DeleteTeams) > 0 {
			ids := make([]int64, len(batch.DeleteTeams))
			for i, id := range batch.DeleteTeams {
				ids[i] = int64(id)
			}
			if err := tx.Delete(&teamRecord{}, ids).Error; err != nil {
				return fmt.Errorf("delete teams: %w", err)
			}
		}

		if len(batch.DeleteGames) > 0 {
			ids := make([]int64, len(batch.DeleteGames))
			for i, id := range batch.DeleteGames {
				ids[i] = int64(id)
			}
			if err := tx.Delete(&gameRecord{}, ids).Error; err != nil {
				return fmt.Errorf("delete games: %w", err)
			}
		}
		return nil
	})
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRecord
	if err := s.db.WithContext(ctx).First(&row, int64(id)).Error; err != nil {
		return nil, notFound(err, model.ErrPlayerNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.findPlayers(s.db.WithContext(ctx))
}

func (s *Storage) ListPlayersInGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	return s.findPlayers(s.db.WithContext(ctx).Where("game_id = ?", int64(gameID)))
}

func (s *Storage) ListPlayersInTeam(ctx context.Context, teamID model.TeamID) ([]*model.Player, error) {
	return s.findPlayers(s.db.WithContext(ctx).Where("team_id = ?", int64(teamID)))
}

func (s *Storage) findPlayers(q *gorm.DB) ([]*model.Player, error) {
	var rows []playerRecord
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	players := make([]*model.Player, len(rows))
	for i := range rows {
		players[i] = rows[i].toModel()
	}
	return players, nil
}

// Game operations

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var row gameRecord
	if err := s.db.WithContext(ctx).First(&row, int64(id)).Error; err != nil {
		return nil, notFound(err, model.ErrGameNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	var rows []gameRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	games := make([]*model.Game, len(rows))
	for i := range rows {
		games[i] = rows[i].toModel()
	}
	return games, nil
}

// Team operations

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var row teamRecord
	if err := s.db.WithContext(ctx).First(&row, int64(id)).Error; err != nil {
		return nil, notFound(err, model.ErrTeamNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.findTeams(s.db.WithContext(ctx))
}

func (s *Storage) ListTeamsInGame(ctx context.Context, gameID model.GameID) ([]*model.Team, error) {
	return s.findTeams(s.db.WithContext(ctx).Where("game_id = ?", int64(gameID)))
}

func (s *Storage) findTeams(q *gorm.DB) ([]*model.Team, error) {
	var rows []teamRecord
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	teams := make([]*model.Team, len(rows))
	for i := range rows {
		teams[i] = rows[i].toModel()
	}
	return teams, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
