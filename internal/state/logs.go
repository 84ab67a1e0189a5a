package state

import (
	"wukong/internal/api"
)

// LogRequest is a log fetch tagged with the buffer id it was issued for.
type LogRequest struct {
	BufferID string
	Query    api.LogQuery
}

// BeginLogFetch captures the parameters of the next log fetch. A one-shot
// fetch marks the logs panel as loading; a tail fetch refreshes silently.
// ok is false while no namespace/version pair is selected.
func (s *Session) BeginLogFetch(tail bool) (req LogRequest, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selection.Complete() {
		return LogRequest{}, false
	}
	if !tail {
		s.panels[PanelLogs].Loading = true
		s.panels[PanelLogs].Err = ""
		s.panels[PanelLogs].Denied = false
	}
	return LogRequest{
		BufferID: s.logs.ID(),
		Query: api.LogQuery{
			Application: s.application,
			Namespace:   s.selection.Namespace,
			Version:     s.selection.Version,
			Since:       s.logs.Since(s.timeRange),
			Severity:    s.severity,
			Limit:       s.logs.Capacity(),
		},
	}, true
}

// ApplyLogEntries appends entries fetched for bufferID. Responses for a
// buffer that has since been reset are discarded and false is returned.
func (s *Session) ApplyLogEntries(bufferID string, entries []api.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.logs.Append(bufferID, entries) {
		return false
	}
	s.succeedLocked(PanelLogs)
	return true
}

// FailLogs records a log fetch error unless the buffer moved on.
func (s *Session) FailLogs(bufferID string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bufferID != s.logs.ID() {
		return false
	}
	s.failLocked(PanelLogs, err)
	return true
}

// ResetLogs empties the buffer, issues a new id and marks logs as loading.
// In-flight responses for the old id will be ignored.
func (s *Session) ResetLogs() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLogsLocked()
}

func (s *Session) resetLogsLocked() string {
	s.panels[PanelLogs] = PanelStatus{Loading: true, Fetched: s.panels[PanelLogs].Fetched}
	return s.logs.Reset()
}

// ToggleErrorSeverity switches between all entries and error-and-above and
// resets the buffer.
func (s *Session) ToggleErrorSeverity() api.Severity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.severity == api.SeverityErrorAndAbove {
		s.severity = api.SeverityDefault
	} else {
		s.severity = api.SeverityErrorAndAbove
	}
	s.resetLogsLocked()
	return s.severity
}

// SetLogTimeRange changes the relative window used before the first entry
// arrives. It resets the buffer and reports true when the value changed.
func (s *Session) SetLogTimeRange(window string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if window == "" {
		window = s.defaultSince
	}
	if window == s.timeRange {
		return false
	}
	s.timeRange = window
	s.resetLogsLocked()
	return true
}

// LogBufferID returns the current buffer generation.
func (s *Session) LogBufferID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs.ID()
}
