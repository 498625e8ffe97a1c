package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericogr/breath-arena/internal/api"
	"github.com/ericogr/breath-arena/internal/config"
	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/engine"
	"github.com/ericogr/breath-arena/internal/logging"
	"github.com/ericogr/breath-arena/internal/service"
	"github.com/ericogr/breath-arena/internal/version"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	logging.SetLevel(logging.ParseLevel(env.LogLevel))

	cfg := loadConfigOrExit(env.ConfigPath)
	env.Apply(cfg)

	repo := createRepositoryOrExit(env.DBPath, cfg.Characters)

	battles := service.NewBattleService(repo, cfg.Opponent, service.Options{
		Pacing:            cfg.Pacing,
		Scheduler:         engine.TimerScheduler{},
		BattleTTL:         cfg.BattleTTL,
		FinishedBattleTTL: cfg.FinishedBattleTTL,
	})
	router := api.NewRouter(api.NewBattleHandler(repo, battles))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("breath-arena starting", logging.Fields{
		constants.LogFieldVersion:    version.String(),
		constants.LogFieldConfigPath: env.ConfigPath,
		constants.LogFieldDBPath:     env.DBPath,
		constants.LogFieldCount:      len(cfg.Characters),
	})
	if err := run(ctx, cfg.ServerAddress, router, battles); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
}
