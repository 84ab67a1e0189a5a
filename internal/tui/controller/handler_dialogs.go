package controller

import (
	"fmt"
	"time"

	"wukong/internal/network"
	"wukong/internal/tui/model"
	"wukong/pkg/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// listKey moves the highlight of a dialog list. It reports whether msg was
// consumed.
func listKey(m *model.Model, l *list.Model, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.Keys.Up):
		l.CursorUp()
	case key.Matches(msg, m.Keys.Down):
		l.CursorDown()
	default:
		return false
	}
	return true
}

func handleNamespaceKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if listKey(m, &m.NamespaceList, msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.Nav.Pop()
	case key.Matches(msg, m.Keys.Enter):
		m.Nav.Pop()
		ns, ok := model.SelectedValue(m.NamespaceList)
		if !ok || !m.Session.SetNamespace(ns) {
			return m, nil
		}
		logging.Info(controllerSubsystem, "namespace changed to %s", ns)
		selectionChanged(m)
		return m, m.SetStatusMessage(fmt.Sprintf("Namespace %s selected", ns), model.StatusBarSuccess, 2*time.Second)
	}
	return m, nil
}

func handleVersionKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if listKey(m, &m.VersionList, msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.Nav.Pop()
	case key.Matches(msg, m.Keys.Enter):
		m.Nav.Pop()
		version, ok := model.SelectedValue(m.VersionList)
		if !ok {
			return m, nil
		}
		changed, err := m.Session.SetVersion(version)
		if err != nil {
			return m, m.SetStatusMessage(err.Error(), model.StatusBarWarning, 3*time.Second)
		}
		if !changed {
			return m, nil
		}
		logging.Info(controllerSubsystem, "version changed to %s", version)
		selectionChanged(m)
		return m, m.SetStatusMessage(fmt.Sprintf("Version %s selected", version), model.StatusBarSuccess, 2*time.Second)
	}
	return m, nil
}

// selectionChanged refreshes everything that depends on the selection. The
// session already reset the log buffer, so the poller refetches the logs on
// the next tick.
func selectionChanged(m *model.Model) {
	m.Session.ResetAppsignal()
	m.Session.ResetDatabaseMetrics()
	m.Poll.AppsignalFor = ""
	m.Poll.DatabasesFor = ""
	resetScroll(m)
	m.Submit(network.GetBuilds)
}

func handleTimeRangeKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if listKey(m, &m.TimeRangeList, msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.Nav.Pop()
	case key.Matches(msg, m.Keys.Enter):
		m.Nav.Pop()
		window, ok := model.SelectedValue(m.TimeRangeList)
		if ok && m.Session.SetLogTimeRange(window) {
			resetScroll(m)
			return m, m.SetStatusMessage(fmt.Sprintf("Showing logs of the last %s", window), model.StatusBarInfo, 2*time.Second)
		}
	}
	return m, nil
}
