package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultTickInterval  = 250 * time.Millisecond
	DefaultTailInterval  = 5 * time.Second
	DefaultMaxLogEntries = 1000
	DefaultSince         = "5m"
)

// GetDefaultConfig returns the configuration used before any file is applied.
func GetDefaultConfig() WukongConfig {
	return WukongConfig{
		API: APIConfig{
			URL: "https://wukong-api-proxy.mindvalley.dev/api",
		},
		Dashboard: DashboardConfig{
			TickInterval:  DefaultTickInterval,
			TailInterval:  DefaultTailInterval,
			MaxLogEntries: DefaultMaxLogEntries,
			DefaultSince:  DefaultSince,
		},
		Gateway: GatewayConfig{
			Timeout:         30 * time.Second,
			RateLimit:       10,
			Burst:           10,
			RetryAttempts:   1,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
			LoggingURL:      "https://logging.googleapis.com",
			MonitoringURL:   "https://monitoring.googleapis.com",
			SQLAdminURL:     "https://sqladmin.googleapis.com",
			TokenInfoURL:    "https://www.googleapis.com/oauth2/v1/tokeninfo",
		},
	}
}

// Validate reports the first setting that makes the dashboard unusable.
func (c WukongConfig) Validate() error {
	if c.Application == "" {
		return errors.New("application is not set (use --application or the application key)")
	}
	if _, err := url.ParseRequestURI(c.API.URL); err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.API.URL, err)
	}
	if c.Dashboard.MaxLogEntries <= 0 {
		return fmt.Errorf("dashboard.maxLogEntries must be positive, got %d", c.Dashboard.MaxLogEntries)
	}
	if c.Dashboard.TickInterval <= 0 || c.Dashboard.TailInterval <= 0 {
		return errors.New("dashboard intervals must be positive")
	}
	if c.Gateway.RetryAttempts == 0 {
		return errors.New("gateway.retryAttempts must be at least 1")
	}
	return nil
}
