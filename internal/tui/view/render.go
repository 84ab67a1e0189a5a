// Package view renders the dashboard model. It only reads the model: every
// mutation happens in the controller.
package view

import (
	"wukong/internal/color"
	"wukong/internal/tui/components"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	if m.Quitting {
		return ""
	}
	if m.Width == 0 || m.Height == 0 {
		return color.SubtleTextStyle.Render("Initializing... (waiting for window size)")
	}

	l := computeLayout(m)
	route := m.Route()

	parts := []string{renderHeader(m, m.Width), renderTabs(m, m.Width)}

	if m.Expanded && isPanel(route.Active.Kind) {
		parts = append(parts, renderPanel(m, route.Active.Kind, m.Width, l.middle))
	} else {
		parts = append(parts, renderMiddle(m, m.Width, l.middle))
		if l.bottom > 0 {
			buildsWidth := m.Width / 2
			row := lipgloss.JoinHorizontal(lipgloss.Top,
				renderPanel(m, model.KindBuild, buildsWidth, l.bottom),
				renderPanel(m, model.KindDeployment, m.Width-buildsWidth, l.bottom),
			)
			parts = append(parts, row)
		}
		if l.database > 0 {
			parts = append(parts, renderPanel(m, model.KindDatabase, m.Width, l.database))
		}
	}

	parts = append(parts, renderStatusBar(m, m.Width), renderHelp(m))
	return color.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func isPanel(k model.Kind) bool {
	switch k {
	case model.KindBuild, model.KindDeployment, model.KindDatabase:
		return true
	}
	return false
}

// renderMiddle draws the selected tab, or the open selection dialog in its
// place.
func renderMiddle(m *model.Model, width, height int) string {
	if l, ok := openList(m); ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, renderListDialog(l, height))
	}
	switch m.SelectedTab {
	case model.TabAppsignal:
		return renderAppsignal(m, width, height)
	case model.TabDatabases:
		return renderDatabasesTab(m, width, height)
	default:
		return renderLogs(m, width, height)
	}
}

func renderPanel(m *model.Model, k model.Kind, width, height int) string {
	switch k {
	case model.KindBuild:
		return renderBuilds(m, width, height)
	case model.KindDeployment:
		return renderDeployments(m, width, height)
	case model.KindDatabase:
		return renderDatabaseSummary(m, width, height)
	}
	return ""
}

// focusOf maps the route onto the border style of the block.
func focusOf(m *model.Model, b model.Block) components.Focus {
	r := m.Route()
	switch {
	case r.Active == b:
		return components.FocusActive
	case r.Active.Kind == model.KindEmpty && r.Hovered == b:
		return components.FocusHovered
	}
	return components.FocusNone
}

// middleFocus treats the log block and the middle tabs as one region.
func middleFocus(m *model.Model) components.Focus {
	r := m.Route()
	switch {
	case r.Active.Kind == model.KindLog || r.Active.Kind == model.KindMiddle:
		return components.FocusActive
	case r.Active.IsDialog(model.DialogLogSearch),
		r.Active.IsDialog(model.DialogLogIncludeFilter),
		r.Active.IsDialog(model.DialogLogExcludeFilter):
		return components.FocusActive
	case r.Active.Kind == model.KindEmpty && r.Hovered.Kind == model.KindLog:
		return components.FocusHovered
	}
	return components.FocusNone
}
