package state

import (
	"errors"
	"fmt"
	"testing"

	"wukong/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeployments() []api.Deployment {
	return []api.Deployment{
		{Name: "stg-green", Environment: "staging", Version: "green"},
		{Name: "prod-green", Environment: "prod", Version: "green"},
		{Name: "prod-blue", Environment: "prod", Version: "blue"},
	}
}

func TestNewSessionStartsLoading(t *testing.T) {
	s := New("wukong-api", 100, "5m")
	snap := s.Snapshot()

	assert.Equal(t, "wukong-api", snap.Application)
	for p := PanelBuilds; p < panelCount; p++ {
		assert.True(t, snap.Panel(p).Loading, p.String())
	}
	assert.Equal(t, TokenUnknown, snap.Okta)
	assert.Equal(t, "5m", snap.TimeRange)
	assert.False(t, snap.Selection.Complete())
}

func TestSetDeploymentsChoosesDefaultSelection(t *testing.T) {
	s := New("app", 10, "5m")

	changed := s.SetDeployments(testDeployments())
	assert.True(t, changed)
	assert.Equal(t, Selection{Namespace: "prod", Version: "blue"}, s.Selection())
	assert.Equal(t, []string{"prod", "staging"}, s.Namespaces())
	assert.Equal(t, []string{"blue", "green"}, s.Versions())

	// a later refresh keeps the user's choice
	require.True(t, s.SetNamespace("staging"))
	assert.False(t, s.SetDeployments(testDeployments()))
	assert.Equal(t, Selection{Namespace: "staging", Version: "green"}, s.Selection())
}

func TestSetDeploymentsWithoutProd(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetDeployments([]api.Deployment{
		{Environment: "staging", Version: "green"},
		{Environment: "dev", Version: "blue"},
	})
	assert.Equal(t, Selection{Namespace: "dev", Version: "blue"}, s.Selection())
}

func TestSetVersionRequiresNamespace(t *testing.T) {
	s := New("app", 10, "5m")
	_, err := s.SetVersion("green")
	assert.Error(t, err)

	s.SetNamespace("prod")
	changed, err := s.SetVersion("green")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.SetVersion("green")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFailedFetchKeepsData(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetNamespace("staging")
	_, _ = s.SetVersion("green")

	builds := []api.Build{{Name: "main-build-1", Commits: []api.Commit{{ID: "abc", MessageHeadline: "fix"}}}}
	s.SetBuilds(builds)

	s.BeginFetch(PanelBuilds)
	st := s.PanelStatus(PanelBuilds)
	assert.True(t, st.Loading)
	assert.Empty(t, st.Err)

	s.FailFetch(PanelBuilds, errors.New("timeout"))
	snap := s.Snapshot()
	assert.False(t, snap.Panel(PanelBuilds).Loading)
	assert.Equal(t, "timeout", snap.Panel(PanelBuilds).Err)
	assert.Equal(t, builds, snap.Builds)

	s.BeginFetch(PanelBuilds)
	assert.Empty(t, s.PanelStatus(PanelBuilds).Err)
	s.SetBuilds(nil)
	st = s.PanelStatus(PanelBuilds)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestPermissionDeniedIsFlagged(t *testing.T) {
	s := New("app", 10, "5m")
	s.FailFetch(PanelDatabase, fmt.Errorf("list instances: %w", api.ErrPermissionDenied))

	st := s.PanelStatus(PanelDatabase)
	assert.True(t, st.Denied)
	assert.Contains(t, st.Err, "permission denied")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetBuilds([]api.Build{{Name: "b1", Commits: []api.Commit{{ID: "1"}}}})

	snap := s.Snapshot()
	snap.Builds[0].Commits[0].ID = "mutated"
	snap.Builds[0].Name = "mutated"

	again := s.Snapshot()
	assert.Equal(t, "b1", again.Builds[0].Name)
	assert.Equal(t, "1", again.Builds[0].Commits[0].ID)
}

func TestPanelDisabled(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetPanelDisabled(PanelAppsignal)
	st := s.PanelStatus(PanelAppsignal)
	assert.True(t, st.Disabled)
	assert.False(t, st.Loading)

	s.ResetAppsignal()
	st = s.PanelStatus(PanelAppsignal)
	assert.True(t, st.Loading)
	assert.False(t, st.Disabled)
}

func TestTokenStatus(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetOktaStatus(TokenValid)
	s.SetGCloudStatus(TokenInvalid)

	snap := s.Snapshot()
	assert.Equal(t, "valid", snap.Okta.String())
	assert.Equal(t, "invalid", snap.GCloud.String())
}

func TestSelectionChangeResetsLogs(t *testing.T) {
	s := New("app", 10, "5m")
	s.SetDeployments(testDeployments())
	id := s.LogBufferID()

	assert.False(t, s.SetNamespace(s.Selection().Namespace))
	assert.Equal(t, id, s.LogBufferID())

	require.True(t, s.SetNamespace("staging"))
	afterNamespace := s.LogBufferID()
	assert.NotEqual(t, id, afterNamespace)
	assert.True(t, s.PanelStatus(PanelLogs).Loading)

	changed, err := s.SetVersion("a-version-nobody-deployed")
	require.NoError(t, err)
	require.True(t, changed)
	assert.NotEqual(t, afterNamespace, s.LogBufferID())
}
