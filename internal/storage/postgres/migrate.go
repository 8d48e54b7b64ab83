package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

var sequences = map[storage.Kind]string{
	storage.KindPlayer: "player_id_seq",
	storage.KindGame:   "game_id_seq",
	storage.KindTeam:   "team_id_seq",
}

type foreignKey struct {
	table, name, column, references string
}

// The players/teams references are cyclic, so constraints are added after
// the tables exist and are deferred to commit time.
var foreignKeys = []foreignKey{
	{"games", "fk_games_owner", "owner_id", "players"},
	{"teams", "fk_teams_game", "game_id", "games"},
	{"teams", "fk_teams_owner", "owner_id", "players"},
	{"players", "fk_players_game", "game_id", "games"},
	{"players", "fk_players_team", "team_id", "teams"},
}

// Migrate creates the id sequences, tables and foreign keys
func Migrate(db *gorm.DB) error {
	for _, seq := range sequences {
		if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS " + seq).Error; err != nil {
			return fmt.Errorf("create sequence %s: %w", seq, err)
		}
	}

	if err := db.AutoMigrate(&playerRecord{}, &gameRecord{}, &teamRecord{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	m := db.Migrator()
	for _, fk := range foreignKeys {
		if m.HasConstraint(fk.table, fk.name) {
			continue
		}
		stmt := fmt.Sprintf(
			`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q (id) DEFERRABLE INITIALLY DEFERRED`,
			fk.table, fk.name, fk.column, fk.references,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}
	return nil
}
