// Package main is the entry point for the stagecue show runtime.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/assets"
	"github.com/stagecue/stagecue/internal/config"
	"github.com/stagecue/stagecue/internal/logger"
	"github.com/stagecue/stagecue/internal/show"
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

	logger.Info("=== StageCue ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s := show.New(cfg)

	// A missing project file just means a fresh show.
	if err := s.LoadProject(cfg.Project.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("starting with an empty project", zap.String("path", cfg.Project.Path))
		} else {
			logger.Error("failed to load project", zap.Error(err))
			os.Exit(1)
		}
	}

	if len(cfg.Assets.Dirs) > 0 {
		lib := assets.NewLibrary()
		for _, dir := range cfg.Assets.Dirs {
			if err := lib.AddDir(dir); err != nil {
				logger.Warn("skipping asset dir", zap.Error(err))
			}
		}
		added := assets.PopulateContent(lib, s.Content())
		logger.Info("asset library indexed",
			zap.Int("models", len(lib.Models())),
			zap.Int("media_added", added))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("show error", zap.Error(err))
		os.Exit(1)
	}

	if err := s.SaveProject(cfg.Project.Path); err != nil {
		logger.Error("failed to save project", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("show closed normally")
}
