package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wukong/pkg/logging"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/wukong"
	projectConfigDir = ".wukong"
	configFileName   = "config.yaml"
	envPrefix        = "WUKONG"
)

// LoadConfig loads the wukong configuration by layering default, user, project
// and environment settings.
func LoadConfig() (WukongConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		logging.Warn("Config", "could not determine user config path: %v", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return WukongConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "could not determine project config path: %v", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return WukongConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	return applyEnvOverrides(config), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a WukongConfig from a YAML file.
func loadConfigFromFile(filePath string) (WukongConfig, error) {
	var config WukongConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return WukongConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return WukongConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base untouched.
func mergeConfigs(base, overlay WukongConfig) WukongConfig {
	merged := base

	if overlay.Application != "" {
		merged.Application = overlay.Application
	}
	if overlay.API.URL != "" {
		merged.API.URL = overlay.API.URL
	}

	if overlay.Auth.Okta.IDToken != "" {
		merged.Auth.Okta.IDToken = overlay.Auth.Okta.IDToken
	}
	if overlay.Auth.Okta.RefreshToken != "" {
		merged.Auth.Okta.RefreshToken = overlay.Auth.Okta.RefreshToken
	}
	if overlay.Auth.GCloud.AccessToken != "" {
		merged.Auth.GCloud.AccessToken = overlay.Auth.GCloud.AccessToken
	}

	d := overlay.Dashboard
	if d.TickInterval > 0 {
		merged.Dashboard.TickInterval = d.TickInterval
	}
	if d.TailInterval > 0 {
		merged.Dashboard.TailInterval = d.TailInterval
	}
	if d.MaxLogEntries > 0 {
		merged.Dashboard.MaxLogEntries = d.MaxLogEntries
	}
	if d.DefaultSince != "" {
		merged.Dashboard.DefaultSince = d.DefaultSince
	}
	if d.LogFile != "" {
		merged.Dashboard.LogFile = d.LogFile
	}
	if d.DebugAddr != "" {
		merged.Dashboard.DebugAddr = d.DebugAddr
	}

	g := overlay.Gateway
	if g.Timeout > 0 {
		merged.Gateway.Timeout = g.Timeout
	}
	if g.RateLimit > 0 {
		merged.Gateway.RateLimit = g.RateLimit
	}
	if g.Burst > 0 {
		merged.Gateway.Burst = g.Burst
	}
	if g.RetryAttempts > 0 {
		merged.Gateway.RetryAttempts = g.RetryAttempts
	}
	if g.BreakerFailures > 0 {
		merged.Gateway.BreakerFailures = g.BreakerFailures
	}
	if g.BreakerCooldown > 0 {
		merged.Gateway.BreakerCooldown = g.BreakerCooldown
	}
	if g.LoggingURL != "" {
		merged.Gateway.LoggingURL = g.LoggingURL
	}
	if g.MonitoringURL != "" {
		merged.Gateway.MonitoringURL = g.MonitoringURL
	}
	if g.SQLAdminURL != "" {
		merged.Gateway.SQLAdminURL = g.SQLAdminURL
	}
	if g.TokenInfoURL != "" {
		merged.Gateway.TokenInfoURL = g.TokenInfoURL
	}

	// Namespaces keep their original order; overlay entries replace by name.
	merged.Namespaces = append([]NamespaceConfig(nil), base.Namespaces...)
	for _, ns := range overlay.Namespaces {
		replaced := false
		for i := range merged.Namespaces {
			if merged.Namespaces[i].Name == ns.Name {
				merged.Namespaces[i] = ns
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Namespaces = append(merged.Namespaces, ns)
		}
	}

	return merged
}

// applyEnvOverrides reads WUKONG_* variables through viper. Nested keys use
// underscores, e.g. WUKONG_AUTH_OKTA_IDTOKEN.
func applyEnvOverrides(cfg WukongConfig) WukongConfig {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if s := v.GetString("application"); s != "" {
		cfg.Application = s
	}
	if s := v.GetString("api.url"); s != "" {
		cfg.API.URL = s
	}
	if s := v.GetString("auth.okta.idtoken"); s != "" {
		cfg.Auth.Okta.IDToken = s
	}
	if s := v.GetString("auth.okta.refreshtoken"); s != "" {
		cfg.Auth.Okta.RefreshToken = s
	}
	if s := v.GetString("auth.gcloud.accesstoken"); s != "" {
		cfg.Auth.GCloud.AccessToken = s
	}
	if d := v.GetDuration("dashboard.tailinterval"); d > 0 {
		cfg.Dashboard.TailInterval = d
	}
	if n := v.GetInt("dashboard.maxlogentries"); n > 0 {
		cfg.Dashboard.MaxLogEntries = n
	}
	if s := v.GetString("dashboard.debugaddr"); s != "" {
		cfg.Dashboard.DebugAddr = s
	}
	if d := v.GetDuration("gateway.timeout"); d > 0 {
		cfg.Gateway.Timeout = d
	}
	return cfg
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
