// Package state holds the dashboard session shared between the render loop
// and the network dispatcher.
package state

import (
	"errors"
	"sort"
	"sync"

	"wukong/internal/api"
	"wukong/internal/logbuffer"
)

// Panel identifies a region whose data is fetched independently.
type Panel int

const (
	PanelBuilds Panel = iota
	PanelDeployments
	PanelLogs
	PanelAppsignal
	PanelDatabase
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelBuilds:
		return "builds"
	case PanelDeployments:
		return "deployments"
	case PanelLogs:
		return "logs"
	case PanelAppsignal:
		return "appsignal"
	case PanelDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// TokenStatus is the tri-state result of a credential check.
type TokenStatus int

const (
	TokenUnknown TokenStatus = iota
	TokenValid
	TokenInvalid
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// PanelStatus is the fetch state of one panel. Loading is cleared on both
// success and failure; Err is cleared when the next fetch starts.
type PanelStatus struct {
	Loading bool
	Err     string
	// Denied marks an Err caused by missing permissions.
	Denied bool
	// Disabled marks a panel whose integration is not configured for the
	// selected namespace.
	Disabled bool
	// Fetched counts completed fetches, successful or not.
	Fetched uint64
}

// preferredNamespace is selected by default when the application has it.
const preferredNamespace = "prod"

// Selection is the namespace/version pair the dashboard is looking at.
type Selection struct {
	Namespace string
	Version   string
}

// Complete reports whether both parts are set.
func (s Selection) Complete() bool {
	return s.Namespace != "" && s.Version != ""
}

// Session is the mutex guarded aggregate of everything the dashboard shows.
// All access goes through its methods; the lock is never held while waiting
// on the network.
type Session struct {
	mu sync.Mutex

	application  string
	defaultSince string
	selection    Selection

	okta   TokenStatus
	gcloud TokenStatus

	builds      []api.Build
	deployments []api.Deployment
	appsignal   api.AppsignalMetrics
	databases   []api.DatabaseMetrics

	logs      *logbuffer.Buffer
	severity  api.Severity
	timeRange string

	panels [panelCount]PanelStatus
}

// New creates a session for application with every panel loading.
func New(application string, maxLogEntries int, defaultSince string) *Session {
	s := &Session{
		application:  application,
		defaultSince: defaultSince,
		timeRange:    defaultSince,
		logs:         logbuffer.New(maxLogEntries),
	}
	for i := range s.panels {
		s.panels[i].Loading = true
	}
	return s
}

// Application is immutable for the session lifetime.
func (s *Session) Application() string { return s.application }

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SetNamespace selects a namespace together with its first deployed
// version, since a version only has meaning within a namespace. A change
// resets the log buffer. It reports whether anything changed.
func (s *Session) SetNamespace(ns string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.Namespace == ns {
		return false
	}
	s.selection = Selection{Namespace: ns}
	for _, v := range versionsLocked(s.deployments, ns) {
		s.selection.Version = v
		break
	}
	s.resetLogsLocked()
	return true
}

// SetVersion selects a version in the current namespace and resets the log
// buffer when it changed.
func (s *Session) SetVersion(version string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.Namespace == "" {
		return false, errors.New("select a namespace first")
	}
	if s.selection.Version == version {
		return false, nil
	}
	s.selection.Version = version
	s.resetLogsLocked()
	return true, nil
}

// Namespaces returns the distinct namespaces found in the deployments.
func (s *Session) Namespaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return namespacesLocked(s.deployments)
}

func namespacesLocked(deployments []api.Deployment) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range deployments {
		if !seen[d.Environment] {
			seen[d.Environment] = true
			out = append(out, d.Environment)
		}
	}
	sort.Strings(out)
	return out
}

// Versions returns the versions deployed to the selected namespace.
func (s *Session) Versions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return versionsLocked(s.deployments, s.selection.Namespace)
}

func versionsLocked(deployments []api.Deployment, ns string) []string {
	var out []string
	for _, d := range deployments {
		if d.Environment == ns {
			out = append(out, d.Version)
		}
	}
	sort.Strings(out)
	return out
}

// BeginFetch marks a panel as loading and clears its error.
func (s *Session) BeginFetch(p Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[p].Loading = true
	s.panels[p].Err = ""
	s.panels[p].Denied = false
}

// FailFetch records a panel error and clears loading. Panel data is left
// untouched.
func (s *Session) FailFetch(p Panel, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLocked(p, err)
}

func (s *Session) failLocked(p Panel, err error) {
	st := &s.panels[p]
	st.Loading = false
	st.Err = err.Error()
	st.Denied = errors.Is(err, api.ErrPermissionDenied)
	st.Fetched++
}

func (s *Session) succeedLocked(p Panel) {
	st := &s.panels[p]
	st.Loading = false
	st.Err = ""
	st.Denied = false
	st.Disabled = false
	st.Fetched++
}

// SetPanelDisabled marks a panel as not configured for the selection.
func (s *Session) SetPanelDisabled(p Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.panels[p]
	st.Loading = false
	st.Err = ""
	st.Disabled = true
	st.Fetched++
}

// PanelStatus returns the status of one panel.
func (s *Session) PanelStatus(p Panel) PanelStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels[p]
}

// SetBuilds replaces the build list.
func (s *Session) SetBuilds(builds []api.Build) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds = builds
	s.succeedLocked(PanelBuilds)
}

// SetDeployments replaces the deployment list. When nothing is selected
// yet, prod (or else the first namespace) and its first version become the
// selection.
// It reports whether the selection changed.
func (s *Session) SetDeployments(deployments []api.Deployment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments = deployments
	s.succeedLocked(PanelDeployments)

	if s.selection.Namespace != "" || len(deployments) == 0 {
		return false
	}
	namespaces := make([]string, 0, len(deployments))
	for _, d := range deployments {
		if d.Environment == preferredNamespace {
			namespaces = []string{preferredNamespace}
			break
		}
		namespaces = append(namespaces, d.Environment)
	}
	sort.Strings(namespaces)
	s.selection.Namespace = namespaces[0]
	if versions := versionsLocked(deployments, s.selection.Namespace); len(versions) > 0 {
		s.selection.Version = versions[0]
	}
	return true
}

// SetAppsignal swaps in a fully aggregated metrics struct.
func (s *Session) SetAppsignal(m api.AppsignalMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appsignal = m
	s.succeedLocked(PanelAppsignal)
}

// ResetAppsignal forgets metrics for a previous selection.
func (s *Session) ResetAppsignal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appsignal = api.AppsignalMetrics{}
	s.panels[PanelAppsignal] = PanelStatus{Loading: true}
}

// SetDatabaseMetrics replaces the database metrics.
func (s *Session) SetDatabaseMetrics(m []api.DatabaseMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.databases = m
	s.succeedLocked(PanelDatabase)
}

// ResetDatabaseMetrics forgets metrics for a previous selection.
func (s *Session) ResetDatabaseMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.databases = nil
	s.panels[PanelDatabase] = PanelStatus{Loading: true}
}

// SetOktaStatus records the result of the Okta token check.
func (s *Session) SetOktaStatus(st TokenStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.okta = st
}

// SetGCloudStatus records the result of the Google Cloud token check.
func (s *Session) SetGCloudStatus(st TokenStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gcloud = st
}
