package state

import (
	"wukong/internal/api"
)

// Snapshot is a deep copy of the session taken once per frame. Renderers and
// the tick poller read it without holding the session lock.
type Snapshot struct {
	Application string
	Selection   Selection
	Namespaces  []string
	Versions    []string

	Okta   TokenStatus
	GCloud TokenStatus

	Builds      []api.Build
	Deployments []api.Deployment
	Appsignal   api.AppsignalMetrics
	Databases   []api.DatabaseMetrics

	LogBufferID   string
	LogEntries    []api.LogEntry
	LogCapacity   int
	LogsTruncated bool
	LogsEvicted   int64
	LogsNewest    string
	Severity      api.Severity
	TimeRange     string

	Panels [panelCount]PanelStatus
}

// Panel returns the status of p in the snapshot.
func (s Snapshot) Panel(p Panel) PanelStatus {
	return s.Panels[p]
}

// Snapshot copies the session under its lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Application:   s.application,
		Selection:     s.selection,
		Okta:          s.okta,
		GCloud:        s.gcloud,
		Appsignal:     s.appsignal,
		LogBufferID:   s.logs.ID(),
		LogEntries:    s.logs.Entries(),
		LogCapacity:   s.logs.Capacity(),
		LogsTruncated: s.logs.Full(),
		LogsEvicted:   s.logs.Evicted(),
		LogsNewest:    s.logs.LastTimestamp(),
		Severity:      s.severity,
		TimeRange:     s.timeRange,
		Panels:        s.panels,
		Namespaces:    namespacesLocked(s.deployments),
		Versions:      versionsLocked(s.deployments, s.selection.Namespace),
	}

	snap.Builds = make([]api.Build, len(s.builds))
	for i, b := range s.builds {
		b.Commits = append([]api.Commit(nil), b.Commits...)
		snap.Builds[i] = b
	}
	snap.Deployments = append([]api.Deployment(nil), s.deployments...)
	snap.Databases = append([]api.DatabaseMetrics(nil), s.databases...)
	return snap
}
