package cmd

import (
	"testing"

	"wukong/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardFlags(t *testing.T) {
	cmd := newDashboardCmd()
	for _, name := range []string{"application", "log-level", "log-file", "debug-addr"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "info", cmd.Flags().Lookup("log-level").DefValue)
}

func TestDashboardOptionsAppConfig(t *testing.T) {
	opts := &dashboardOptions{
		application: "mv-wukong-ci-mock",
		logLevel:    "debug",
		debugAddr:   "127.0.0.1:9090",
	}
	cfg, err := opts.appConfig()
	require.NoError(t, err)
	assert.Equal(t, "mv-wukong-ci-mock", cfg.Application)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9090", cfg.DebugAddr)
	assert.Empty(t, cfg.LogFile)

	opts.logLevel = "loud"
	_, err = opts.appConfig()
	assert.Error(t, err)
}
