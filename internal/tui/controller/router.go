package controller

import (
	"wukong/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// routeKey hands a key press to the handler of the active block.
func routeKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.ForceQuit) {
		return quit(m)
	}

	active := m.Route().Active
	switch active.Kind {
	case model.KindEmpty:
		return handleEmptyKey(m, msg)
	case model.KindLog:
		return handleLogKey(m, msg)
	case model.KindBuild, model.KindDeployment, model.KindDatabase:
		return handlePanelKey(m, msg)
	case model.KindMiddle:
		if active.Tab == model.TabGCloud {
			return handleLogKey(m, msg)
		}
		return handleMiddleKey(m, msg)
	case model.KindDialog:
		switch active.Dialog {
		case model.DialogNamespaceSelection:
			return handleNamespaceKey(m, msg)
		case model.DialogVersionSelection:
			return handleVersionKey(m, msg)
		case model.DialogLogTimeFilter:
			return handleTimeRangeKey(m, msg)
		case model.DialogLogSearch:
			return handleSearchKey(m, msg)
		case model.DialogLogIncludeFilter:
			return handleIncludeKey(m, msg)
		case model.DialogLogExcludeFilter:
			return handleExcludeKey(m, msg)
		}
	}
	return m, nil
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	m.Quitting = true
	return m, tea.Quit
}

// direction maps a directional key, if msg is one.
func direction(m *model.Model, msg tea.KeyMsg) (model.Direction, bool) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		return model.DirUp, true
	case key.Matches(msg, m.Keys.Down):
		return model.DirDown, true
	case key.Matches(msg, m.Keys.Left):
		return model.DirLeft, true
	case key.Matches(msg, m.Keys.Right):
		return model.DirRight, true
	}
	return 0, false
}

// tabKey maps the digit keys onto middle panel tabs.
func tabKey(m *model.Model, msg tea.KeyMsg) (model.Tab, bool) {
	switch {
	case key.Matches(msg, m.Keys.Tab1):
		return model.TabGCloud, true
	case key.Matches(msg, m.Keys.Tab2):
		return model.TabAppsignal, true
	case key.Matches(msg, m.Keys.Tab3):
		return model.TabDatabases, true
	}
	return 0, false
}

// selectTab activates a middle panel tab. From the empty route it drills
// in; elsewhere the current route is replaced.
func selectTab(m *model.Model, tab model.Tab) {
	m.SelectedTab = tab
	r := model.Route{Active: model.Middle(tab), Hovered: model.Middle(tab)}
	if m.Route().Active.Kind == model.KindEmpty {
		m.Nav.Push(r)
		return
	}
	m.Nav.Set(r)
}

// back closes the expanded view or returns to the previous route. Closing
// the expanded view also leaves the block, keeping it hovered.
func back(m *model.Model) {
	if m.Expanded {
		m.Expanded = false
		deactivate(m)
		return
	}
	m.Nav.Pop()
}

// deactivate returns to a route with nothing active and the current block
// hovered. The middle tabs are hovered through the log block.
func deactivate(m *model.Model) {
	hovered := m.Route().Hovered
	if hovered.Kind == model.KindMiddle {
		hovered = model.Log()
	}
	m.Nav.Pop()
	m.Nav.Set(model.Route{Active: model.Empty(), Hovered: hovered})
}
