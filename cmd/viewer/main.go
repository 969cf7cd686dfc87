// Package main is the entry point for the stageview viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/veldrane/stageview/internal/config"
	"github.com/veldrane/stageview/internal/logger"
	"github.com/veldrane/stageview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== stageview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.LoadStage(config.StagePath()); err != nil {
		logger.Error("failed to load stage", zap.Error(err))
		os.Exit(1)
	}
	if t, ok := config.TimeOverride(); ok {
		app.SetTime(t)
	}

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
