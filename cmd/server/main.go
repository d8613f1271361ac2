package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"delve/internal/agent"
	"delve/internal/config"
	"delve/internal/domain"
	"delve/internal/engine"
	"delve/internal/infrastructure/storage"
	"delve/internal/server"
	"delve/internal/version"
	"delve/pkg/dungeon"
	"delve/pkg/logger"
	"delve/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги и конфиг
	var (
		configPath   string
		seed         string
		continuePath string
		latest       bool
		autoplay     int
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML config (empty for defaults)")
	flag.StringVar(&seed, "seed", "", "Master seed: a number or any phrase (empty for config value or random)")
	flag.StringVar(&continuePath, "continue", "", "Continue the game from a save file")
	flag.BoolVar(&latest, "latest", false, "Continue the most recent save from the index")
	flag.IntVar(&autoplay, "autoplay", 0, "Let the bot play N rounds headless instead of serving clients")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	if seed != "" {
		cfg.Game.Seed = utils.StringToSeed(seed)
	}

	logger.Log.Info("Starting Delve...")
	logger.Log.Info(version.String())

	// 2. Контент и генератор
	content, err := dungeon.LoadContent(cfg.Game.ContentDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load content tables")
	}
	gen := dungeon.NewGenerator(content, cfg.Dungeon())

	// 3. Хранилище
	var index *storage.Index
	if cfg.Storage.IndexPath != "" {
		if index, err = storage.OpenIndex(cfg.Storage.IndexPath); err != nil {
			logger.Log.WithError(err).Fatal("Failed to open save index")
		}
		defer index.Close()
	}
	saves, err := storage.NewSaveService(cfg.Storage.SaveDir, index)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to init save storage")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Новая игра или продолжение
	game, err := bootstrap(ctx, cfg, gen, saves, continuePath, latest)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start game")
	}
	game.Saver = saves
	logger.Log.WithFields(logrus.Fields{
		"seed":  game.Seed(),
		"depth": game.Depth(),
		"round": game.Round(),
		"slot":  saves.Slot(),
	}).Info("Game ready")

	// 5. Игровой цикл: бот без сети или websocket-сервер
	if autoplay > 0 {
		err = game.Run(ctx, agent.NewBot(autoplay), nil)
	} else {
		srv := server.New(cfg.Server)
		input, observer := srv.Attach(game)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Log.WithError(err).Error("Server stopped")
				stop()
			}
		}()
		err = game.Run(ctx, input, observer)
		srv.Shutdown()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Error("Game loop failed")
	}

	// 6. Цикл всегда останавливается на границе раунда, сохраняться здесь безопасно
	if cfg.Storage.SaveOnExit && !game.IsOver() {
		if err := saves.Save(context.Background(), game.State()); err != nil {
			logger.Log.WithError(err).Error("Failed to save on exit")
		}
	}
	logger.Log.Info("Done.")
}

// bootstrap создает новую партию или восстанавливает сохраненную.
// Битый сейв не фатален: начинается новая игра.
func bootstrap(ctx context.Context, cfg *config.Config, gen *dungeon.Generator, saves *storage.SaveService, path string, latest bool) (*engine.Game, error) {
	var (
		state *domain.GameState
		err   error
	)
	switch {
	case path != "":
		state, err = saves.Continue(path)
	case latest:
		state, err = saves.ContinueLatest(ctx)
	}

	if state != nil {
		return engine.Restore(cfg.Engine(gen.Content().Progression), gen, state)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrSaveFormat) && !errors.Is(err, storage.ErrNoSaves) {
			return nil, err
		}
		logger.Log.WithError(err).Warn("Saved game unavailable, starting a new one")
	}
	return engine.NewGame(cfg.Engine(gen.Content().Progression), gen)
}
