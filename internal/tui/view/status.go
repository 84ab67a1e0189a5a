package view

import (
	"wukong/internal/color"
	"wukong/internal/state"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *model.Model, width int) string {
	leftW := width / 4
	rightW := width / 4
	centerW := max(0, width-leftW-rightW)

	left := ""
	if anyLoading(m.Snapshot, m.SelectedTab == model.TabAppsignal) {
		left = m.Spinner.View() + " fetching"
	}
	leftStr := color.StatusBarStyle.Width(leftW).Render(fit(left, leftW))

	right := "tailing paused"
	if m.Tailing {
		right = "tailing"
	}
	rightStr := color.StatusBarStyle.Width(rightW).Align(lipgloss.Right).Render(fit(right, rightW))

	msgStyle := color.StatusBarStyle
	switch m.StatusBarMessageType {
	case model.StatusBarSuccess:
		msgStyle = color.StatusMessageSuccess
	case model.StatusBarError:
		msgStyle = color.StatusMessageError
	case model.StatusBarWarning:
		msgStyle = color.StatusMessageWarning
	case model.StatusBarInfo:
		msgStyle = color.StatusMessageInfo
	}
	if m.StatusBarMessage == "" {
		msgStyle = color.StatusBarStyle
	}
	centerStr := msgStyle.Width(centerW).Align(lipgloss.Center).Render(fit(m.StatusBarMessage, centerW))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftStr, centerStr, rightStr)
}

// anyLoading reports whether a visible panel waits for data. AppSignal is
// only fetched while its tab is shown.
func anyLoading(snap state.Snapshot, appsignalShown bool) bool {
	for p, st := range snap.Panels {
		if state.Panel(p) == state.PanelAppsignal && !appsignalShown {
			continue
		}
		if st.Loading {
			return true
		}
	}
	return false
}

func renderHelp(m *model.Model) string {
	return m.Help.View(m.Keys)
}
