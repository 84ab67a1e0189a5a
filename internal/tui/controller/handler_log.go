package controller

import (
	"fmt"
	"strings"
	"time"

	"wukong/internal/logbuffer"
	"wukong/internal/tui/model"
	"wukong/pkg/logging"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleLogKey handles keys while the log panel is active.
func handleLogKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	page := max(1, m.LogViewportHeight)

	switch {
	case key.Matches(msg, m.Keys.Back):
		back(m)
	case key.Matches(msg, m.Keys.Up):
		m.Scroll.Up(page)
	case key.Matches(msg, m.Keys.Down):
		m.Scroll.Down(page, visibleLogCount(m))
	case key.Matches(msg, m.Keys.Left), key.Matches(msg, m.Keys.Right):
		m.Scroll.Hold()
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	case key.Matches(msg, m.Keys.Tailing):
		return toggleTailing(m)
	case key.Matches(msg, m.Keys.ErrorLevel):
		return toggleErrorLevel(m)
	case key.Matches(msg, m.Keys.Search):
		openSearch(m)
	case key.Matches(msg, m.Keys.Filter):
		openFilter(m)
	case key.Matches(msg, m.Keys.TimeRange):
		model.SetSelectionItems(&m.TimeRangeList, model.DefaultTimeRanges, m.Snapshot.TimeRange)
		pushDialog(m, model.DialogLogTimeFilter)
	case key.Matches(msg, m.Keys.Expand):
		m.Expanded = true
	case key.Matches(msg, m.Keys.Wrap):
		m.Wrap = !m.Wrap
		m.LogViewport.SetXOffset(0)
	case key.Matches(msg, m.Keys.CopyLogs):
		return copyLogs(m)
	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
	default:
		if tab, ok := tabKey(m, msg); ok {
			selectTab(m, tab)
		}
	}
	return m, nil
}

func openSearch(m *model.Model) {
	m.SelectedTab = model.TabGCloud
	m.ShowSearchBar = true
	m.ShowFilterBar = false
	m.Include.Reset()
	m.Exclude.Reset()
	pushDialog(m, model.DialogLogSearch)
}

func openFilter(m *model.Model) {
	m.SelectedTab = model.TabGCloud
	m.ShowFilterBar = true
	m.ShowSearchBar = false
	m.Search.Reset()
	pushDialog(m, model.DialogLogIncludeFilter)
}

func toggleTailing(m *model.Model) (*model.Model, tea.Cmd) {
	m.Tailing = !m.Tailing
	if m.Tailing {
		resetScroll(m)
		return m, m.SetStatusMessage("Tailing logs", model.StatusBarInfo, 2*time.Second)
	}
	return m, m.SetStatusMessage("Tailing paused", model.StatusBarInfo, 2*time.Second)
}

func toggleErrorLevel(m *model.Model) (*model.Model, tea.Cmd) {
	sev := m.Session.ToggleErrorSeverity()
	resetScroll(m)
	logging.Info(controllerSubsystem, "log severity set to %s", sev)
	return m, m.SetStatusMessage(fmt.Sprintf("Showing %s logs", strings.ToLower(sev.String())), model.StatusBarInfo, 2*time.Second)
}

// visibleLines renders every log line that passes the current search or
// filter.
func visibleLines(m *model.Model) []logbuffer.Line {
	lines, _ := logbuffer.Render(m.Snapshot.LogEntries, m.Matcher(), 0, 0)
	return lines
}

func visibleLogCount(m *model.Model) int {
	return len(m.Matcher().Apply(m.Snapshot.LogEntries))
}

func copyLogs(m *model.Model) (*model.Model, tea.Cmd) {
	lines := visibleLines(m)
	if len(lines) == 0 {
		return m, m.SetStatusMessage("No logs to copy", model.StatusBarWarning, 3*time.Second)
	}
	text := make([]string, len(lines))
	for i, l := range lines {
		text[i] = l.Text
	}
	if err := m.Clipboard(strings.Join(text, "\n")); err != nil {
		logging.Error(controllerSubsystem, err, "copy logs")
		return m, m.SetStatusMessage("Copy logs failed", model.StatusBarError, 3*time.Second)
	}
	return m, m.SetStatusMessage(fmt.Sprintf("%d log lines copied to clipboard", len(lines)), model.StatusBarSuccess, 3*time.Second)
}
