package main

import (
	"os"

	"subtrack/internal/cli"
	"subtrack/internal/config"
	"subtrack/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		logger.Error("Failed to load presets", "error", err, "path", cfg.PresetsFile)
		os.Exit(1)
	}

	repo := cli.InitStore(logger, cfg.DBPath)
	service := services.NewSubscriptionService(repo)
	defer service.Close()

	app := &cli.App{
		Config:  cfg,
		Presets: presets,
		Service: service,
	}
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
