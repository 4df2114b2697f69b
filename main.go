package main

import (
	"flag"
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/suntan-superman/galageaux-sub001/config"
)

func main() {
	configPath := flag.String("config", "", "stage/tunable tables (YAML); embedded defaults when empty")
	seed := flag.Int64("seed", 0, "RNG seed for a reproducible session (0 picks one)")
	watch := flag.Bool("watch", false, "reload tables on change; applied on the next restart")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	// latest holds the tables the next session starts from; a running
	// session is never touched by a reload.
	latest := &atomic.Pointer[config.Config]{}
	latest.Store(&cfg)

	if *watch && *configPath != "" {
		watcher, err := config.NewWatcher(filepath.Dir(*configPath))
		if err != nil {
			logger.Fatal("watch config", zap.Error(err))
		}
		defer func() { _ = watcher.Close() }()
		go func() {
			for path := range watcher.Events {
				reloaded, err := config.Load(*configPath)
				if err != nil {
					logger.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
					continue
				}
				latest.Store(&reloaded)
				logger.Info("config reloaded for next session", zap.String("path", path))
			}
		}()
	}

	game, err := NewGame(latest, *seed, logger)
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}

	ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
	ebiten.SetWindowTitle("galageaux")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
