package main

import (
	"fmt"
	"log/slog"

	"github.com/pmsdemo/pms-api/internal/config"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
)

// loadAppConfig reads configuration and applies command-line overrides.
func loadAppConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.seed != nil {
		cfg.Storage.Seed = *opts.seed
	}

	attrs := []any{
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_driver", cfg.Storage.Driver,
		"seed", cfg.Storage.Seed,
	}
	switch cfg.Storage.Driver {
	case config.DriverFile:
		attrs = append(attrs, "file_path", cfg.Storage.FilePath)
	case config.DriverPostgres:
		attrs = append(attrs, "database_url_present", cfg.Database.URL != "")
	}
	slog.Info("Server configuration loaded", attrs...)

	return cfg, nil
}

// setupAppLogger installs the default JSON logger. verbose forces debug level
// without touching cfg.
func setupAppLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	serverCfg := cfg.Server
	if verbose {
		serverCfg.LogLevel = "debug"
	}

	l, err := logger.Setup(serverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
