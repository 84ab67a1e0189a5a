package controller

import (
	"wukong/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handlePanelKey handles the builds, deployments and database panels.
func handlePanelKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		back(m)
	case key.Matches(msg, m.Keys.Expand):
		m.Expanded = true
	}
	return m, nil
}

// handleMiddleKey handles the AppSignal and Databases tabs.
func handleMiddleKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		back(m)
	case key.Matches(msg, m.Keys.Expand):
		m.Expanded = true
	default:
		if tab, ok := tabKey(m, msg); ok {
			selectTab(m, tab)
		}
	}
	return m, nil
}
