package app

import (
	"wukong/internal/config"
	"wukong/pkg/logging"
)

// Config holds the application configuration
type Config struct {
	// Application overrides the configured application when set.
	Application string

	// Logging
	LogLevel logging.LogLevel
	LogFile  string

	// DebugAddr enables the debug HTTP server.
	DebugAddr string

	// Resolved wukong configuration, filled by NewApplication.
	WukongConfig *config.WukongConfig
}

// NewConfig creates a new application configuration
func NewConfig(application string, level logging.LogLevel, logFile, debugAddr string) *Config {
	return &Config{
		Application: application,
		LogLevel:    level,
		LogFile:     logFile,
		DebugAddr:   debugAddr,
	}
}

// resolve layers the command line settings over the loaded configuration.
func (c *Config) resolve(cfg config.WukongConfig) config.WukongConfig {
	if c.Application != "" {
		cfg.Application = c.Application
	}
	if c.LogFile != "" {
		cfg.Dashboard.LogFile = c.LogFile
	}
	if c.DebugAddr != "" {
		cfg.Dashboard.DebugAddr = c.DebugAddr
	}
	return cfg
}
