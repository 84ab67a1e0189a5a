package controller

import (
	"time"

	"wukong/internal/network"
	"wukong/internal/state"
	"wukong/internal/tui/model"
	"wukong/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// handleTick refreshes the snapshot and submits whatever the current
// selection still needs. Events carry no parameters; the dispatcher reads
// the selection when it processes them.
func handleTick(m *model.Model, now time.Time) (*model.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.Tick()}
	if m.Session == nil {
		return m, tea.Batch(cmds...)
	}

	m.Snapshot = m.Session.Snapshot()
	snap := m.Snapshot
	sel := snap.Selection

	if sel.Complete() && !m.Poll.SelectionReady {
		m.Poll.SelectionReady = true
		m.Submit(network.GetBuilds)
	}

	pollLogs(m, now)

	if sel.Namespace != "" {
		if m.SelectedTab == model.TabAppsignal && m.Poll.AppsignalFor != sel.Namespace {
			m.Poll.AppsignalFor = sel.Namespace
			m.Submit(network.GetAppsignalData)
		}
		if m.Poll.DatabasesFor != sel.Namespace {
			m.Poll.DatabasesFor = sel.Namespace
			m.Submit(network.GetDatabaseMetrics)
		}
	}

	if cmd := bounceDeniedDatabase(m); cmd != nil {
		cmds = append(cmds, cmd)
	}

	syncLogViewport(m)
	return m, tea.Batch(cmds...)
}

// pollLogs issues a full fetch for every new buffer and, while tailing,
// a tail fetch once the previous request completed and the tail interval
// elapsed.
func pollLogs(m *model.Model, now time.Time) {
	snap := m.Snapshot
	if !snap.Selection.Complete() {
		return
	}
	st := snap.Panel(state.PanelLogs)

	if snap.LogBufferID != m.Poll.LogBuffer {
		m.Poll.LogBuffer = snap.LogBufferID
		m.Poll.LogFetched = st.Fetched
		m.Poll.LastTail = now
		m.Submit(network.GetGCloudLogs)
		return
	}

	if !m.Tailing || st.Loading || st.Fetched == m.Poll.LogFetched {
		return
	}
	if now.Sub(m.Poll.LastTail) < m.TailInterval {
		return
	}
	m.Poll.LogFetched = st.Fetched
	m.Poll.LastTail = now
	m.Submit(network.GetGCloudLogsTail)
}

// bounceDeniedDatabase leaves the database views once a fetch came back
// with a permission error.
func bounceDeniedDatabase(m *model.Model) tea.Cmd {
	st := m.Snapshot.Panel(state.PanelDatabase)
	if !st.Denied {
		return nil
	}
	if st.Fetched != m.Poll.DeniedHandled {
		m.Poll.DeniedHandled = st.Fetched
		logging.Warn(controllerSubsystem, "database metrics denied: %s", st.Err)
	}

	active := m.Route().Active
	if active.Kind != model.KindDatabase && active != model.Middle(model.TabDatabases) {
		return nil
	}
	m.Expanded = false
	m.Nav.Pop()
	return m.SetStatusMessage("You don't have permission to view database metrics", model.StatusBarError, 5*time.Second)
}
