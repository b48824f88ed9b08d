package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"holocron/internal/app"
	"holocron/internal/config"
	"holocron/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})
	logging.SetGlobalLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Zerolog().Fatal().Err(err).Msg("holocron stopped")
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	defer application.Close()

	if cfg.Features.SeedDemoData {
		if err := bootstrapDemoData(ctx, application.Store); err != nil {
			return err
		}
	}

	return serve(ctx, cfg.Server.Addr(), application.Handler())
}
