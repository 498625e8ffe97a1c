package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the SQLite database at dataSourceName, migrates the
// schema and syncs the configured roster into it.
func OpenAndMigrate(dataSourceName string, charactersFromConfig []game.Character) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." && dataSourceName != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dataSourceName, err)
	}

	if err := db.AutoMigrate(&game.Character{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := syncCharacters(db, charactersFromConfig); err != nil {
		return nil, err
	}
	return db, nil
}

// syncCharacters upserts every configured character on `character_key`.
// The config file is the source of truth for stats. Rows for characters
// removed from the config stay in the table but are no longer listed.
func syncCharacters(db *gorm.DB, characters []game.Character) error {
	if len(characters) == 0 {
		return nil
	}
	rows := make([]game.Character, len(characters))
	copy(rows, characters)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "character_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "class", "max_health", "max_resource", "attack_power",
			"defense_power", "speed", "avatar", "color", "updated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("sync characters: %w", err)
	}
	logging.Info("character roster synced", logging.Fields{constants.LogFieldCount: len(rows)})
	return nil
}
