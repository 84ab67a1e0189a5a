// Package app bootstraps the dashboard: configuration, logging, the shared
// session, the network dispatcher and the terminal program.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"wukong/internal/config"
	"wukong/pkg/logging"
)

const dashboardLogFile = "dashboard.log"

// Application is the main application structure that bootstraps and runs
// the dashboard
type Application struct {
	config   *Config
	services *Services
}

// loadConfig is replaced in tests.
var loadConfig = config.LoadConfig

// NewApplication resolves the configuration and initializes all services.
// Logging goes to a file from here on because the terminal belongs to the
// dashboard.
func NewApplication(cfg *Config) (*Application, error) {
	wukongCfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load wukong configuration: %w", err)
	}
	wukongCfg = cfg.resolve(wukongCfg)
	if wukongCfg.Dashboard.LogFile == "" {
		if dir, err := config.GetUserConfigDir(); err == nil {
			wukongCfg.Dashboard.LogFile = filepath.Join(dir, dashboardLogFile)
		}
	}
	if err := wukongCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.WukongConfig = &wukongCfg

	if err := logging.InitForTUI(cfg.LogLevel, wukongCfg.Dashboard.LogFile); err != nil {
		return nil, err
	}
	logging.Info("Bootstrap", "loaded configuration for %s", wukongCfg.Application)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Run executes the dashboard until the user quits or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer logging.Sync()
	return runTUIMode(ctx, a.config, a.services)
}
