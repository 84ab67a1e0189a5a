package controller

import (
	"time"

	"wukong/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleEmptyKey handles keys while no block is active: global actions,
// moving the hover and drilling into the hovered block.
func handleEmptyKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return quit(m)
	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
		return m, nil
	case key.Matches(msg, m.Keys.Namespace):
		return openNamespaceDialog(m)
	case key.Matches(msg, m.Keys.Version):
		return openVersionDialog(m)
	case key.Matches(msg, m.Keys.Search):
		m.Nav.Push(model.Route{Active: model.Log(), Hovered: model.Log()})
		openSearch(m)
		return m, nil
	case key.Matches(msg, m.Keys.Filter):
		m.Nav.Push(model.Route{Active: model.Log(), Hovered: model.Log()})
		openFilter(m)
		return m, nil
	case key.Matches(msg, m.Keys.Tailing):
		return toggleTailing(m)
	case key.Matches(msg, m.Keys.ErrorLevel):
		return toggleErrorLevel(m)
	case key.Matches(msg, m.Keys.Enter):
		hovered := m.Route().Hovered
		if hovered.Kind == model.KindLog && m.SelectedTab != model.TabGCloud {
			hovered = model.Middle(m.SelectedTab)
		}
		m.Nav.Push(model.Route{Active: hovered, Hovered: hovered})
		return m, nil
	}

	if tab, ok := tabKey(m, msg); ok {
		selectTab(m, tab)
		return m, nil
	}

	if dir, ok := direction(m, msg); ok {
		r := m.Route()
		if next, moved := model.Neighbour(r.Hovered, dir); moved {
			r.Hovered = next
			m.Nav.Set(r)
		}
	}
	return m, nil
}

func openNamespaceDialog(m *model.Model) (*model.Model, tea.Cmd) {
	if len(m.Snapshot.Namespaces) == 0 {
		return m, m.SetStatusMessage("No deployments loaded yet", model.StatusBarWarning, 3*time.Second)
	}
	model.SetSelectionItems(&m.NamespaceList, m.Snapshot.Namespaces, m.Snapshot.Selection.Namespace)
	pushDialog(m, model.DialogNamespaceSelection)
	return m, nil
}

func openVersionDialog(m *model.Model) (*model.Model, tea.Cmd) {
	if m.Snapshot.Selection.Namespace == "" {
		return m, m.SetStatusMessage("Select a namespace first", model.StatusBarWarning, 3*time.Second)
	}
	model.SetSelectionItems(&m.VersionList, m.Snapshot.Versions, m.Snapshot.Selection.Version)
	pushDialog(m, model.DialogVersionSelection)
	return m, nil
}

func pushDialog(m *model.Model, ctx model.DialogContext) {
	m.Nav.Push(model.Route{Active: model.Dialog(ctx), Hovered: model.Dialog(ctx)})
}
