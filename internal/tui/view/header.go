package view

import (
	"strings"

	"wukong/internal/color"
	"wukong/internal/state"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderHeader(m *model.Model, width int) string {
	snap := m.Snapshot
	field := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return color.LabelStyle.Render(label+": ") + color.ValueStyle.Render(value)
	}

	parts := []string{
		color.HeaderStyle.Render("wukong"),
		field("application", snap.Application),
		field("namespace", snap.Selection.Namespace),
		field("version", snap.Selection.Version),
		color.LabelStyle.Render("okta: ") + tokenBadge(snap.Okta),
		color.LabelStyle.Render("gcloud: ") + tokenBadge(snap.GCloud),
	}
	line := strings.Join(parts, color.SubtleTextStyle.Render(" │ "))
	return fit(line, width)
}

func tokenBadge(st state.TokenStatus) string {
	switch st {
	case state.TokenValid:
		return color.SuccessTextStyle.Render("✔ valid")
	case state.TokenInvalid:
		return color.ErrorTextStyle.Render("✘ login required")
	default:
		return color.SubtleTextStyle.Render("…")
	}
}

var tabTitles = map[model.Tab]string{
	model.TabGCloud:    "1 GCloud Logs",
	model.TabAppsignal: "2 AppSignal",
	model.TabDatabases: "3 Databases",
}

func renderTabs(m *model.Model, width int) string {
	tabs := make([]string, 0, len(model.Tabs))
	for _, t := range model.Tabs {
		style := color.TabStyle
		if t == m.SelectedTab {
			style = color.TabActiveStyle
		}
		tabs = append(tabs, style.Render(tabTitles[t]))
	}
	return fit(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), width)
}

// fit cuts s to one line of at most width cells.
func fit(s string, width int) string {
	return lipgloss.NewStyle().Inline(true).MaxWidth(width).Render(s)
}
