package main

import (
	"github.com/ericogr/breath-arena/internal/config"
	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/game"
	"github.com/ericogr/breath-arena/internal/logging"
	"github.com/ericogr/breath-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{
			constants.LogFieldConfigPath: path,
			"hint": "create an arena_config.json with a 'character_list' array of objects (name,class,max_health,max_resource,attack,defense,speed,avatar,color) and optional keys: opponent, server.address, pacing, battle_ttl, finished_battle_ttl",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, characters []game.Character) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, characters)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDBPath: dbPath})
	}
	return storage.NewSQLiteRepository(db, characters)
}
