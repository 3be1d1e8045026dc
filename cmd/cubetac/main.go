// Package main is the entry point for cubetac.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/config"
	"github.com/Faultbox/cubetac/internal/game"
	"github.com/Faultbox/cubetac/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cubetac ===", zap.String("config", cfg.Source))
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	// Fatal skips deferred calls, so close explicitly.
	if err := g.Run(); err != nil {
		g.Close()
		logger.Fatal("game error", zap.Error(err))
	}
	g.Close()

	logger.Info("game closed normally")
}
