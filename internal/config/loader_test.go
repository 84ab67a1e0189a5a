package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// pointConfigPaths redirects both config lookups into tempDir.
func pointConfigPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})
	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	pointConfigPaths(t, t.TempDir())

	loaded, err := LoadConfig()
	require.NoError(t, err)

	def := GetDefaultConfig()
	assert.Equal(t, def.Dashboard, loaded.Dashboard)
	assert.Equal(t, def.Gateway, loaded.Gateway)
	assert.Empty(t, loaded.Namespaces)
}

func TestLoadConfig_UserThenProject(t *testing.T) {
	tempDir := t.TempDir()
	pointConfigPaths(t, tempDir)

	writeConfigFile(t, filepath.Join(tempDir, userConfigDir), `
api:
  url: https://user.example.com/api
auth:
  okta:
    idToken: user-token
dashboard:
  tailInterval: 10s
namespaces:
  - name: prod
    appsignal:
      enable: true
      appId: user-app
`)
	writeConfigFile(t, filepath.Join(tempDir, projectConfigDir), `
application: wukong-api
dashboard:
  maxLogEntries: 200
namespaces:
  - name: prod
    appsignal:
      enable: true
      appId: project-app
      environment: production
  - name: staging
    cloudsql:
      enable: true
      projectId: stg-project
`)

	loaded, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "wukong-api", loaded.Application)
	assert.Equal(t, "https://user.example.com/api", loaded.API.URL)
	assert.Equal(t, "user-token", loaded.Auth.Okta.IDToken)
	assert.Equal(t, 10*time.Second, loaded.Dashboard.TailInterval)
	assert.Equal(t, 200, loaded.Dashboard.MaxLogEntries)
	assert.Equal(t, DefaultTickInterval, loaded.Dashboard.TickInterval)

	require.Len(t, loaded.Namespaces, 2)
	prod, ok := loaded.Namespace("prod")
	require.True(t, ok)
	assert.Equal(t, "project-app", prod.Appsignal.AppID)
	staging, ok := loaded.Namespace("staging")
	require.True(t, ok)
	assert.Equal(t, "stg-project", staging.CloudSQL.ProjectID)

	_, ok = loaded.Namespace("dev")
	assert.False(t, ok)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	pointConfigPaths(t, tempDir)
	writeConfigFile(t, filepath.Join(tempDir, projectConfigDir), "dashboard: [unclosed")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	pointConfigPaths(t, t.TempDir())
	t.Setenv("WUKONG_APPLICATION", "from-env")
	t.Setenv("WUKONG_AUTH_GCLOUD_ACCESSTOKEN", "ya29.env")
	t.Setenv("WUKONG_DASHBOARD_TAILINTERVAL", "2s")

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.Application)
	assert.Equal(t, "ya29.env", loaded.Auth.GCloud.AccessToken)
	assert.Equal(t, 2*time.Second, loaded.Dashboard.TailInterval)
}

func TestValidate(t *testing.T) {
	valid := GetDefaultConfig()
	valid.Application = "wukong-api"

	tests := []struct {
		name    string
		mutate  func(c *WukongConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *WukongConfig) {}},
		{name: "missing application", mutate: func(c *WukongConfig) { c.Application = "" }, wantErr: "application"},
		{name: "bad url", mutate: func(c *WukongConfig) { c.API.URL = "not a url" }, wantErr: "api url"},
		{name: "zero capacity", mutate: func(c *WukongConfig) { c.Dashboard.MaxLogEntries = 0 }, wantErr: "maxLogEntries"},
		{name: "zero retry attempts", mutate: func(c *WukongConfig) { c.Gateway.RetryAttempts = 0 }, wantErr: "retryAttempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
