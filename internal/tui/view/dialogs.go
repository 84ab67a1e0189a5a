package view

import (
	"wukong/internal/color"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mattn/go-runewidth"
)

// openList returns the list dialog on top of the route, if any.
func openList(m *model.Model) (list.Model, bool) {
	active := m.Route().Active
	if active.Kind != model.KindDialog {
		return list.Model{}, false
	}
	switch active.Dialog {
	case model.DialogNamespaceSelection:
		return m.NamespaceList, true
	case model.DialogVersionSelection:
		return m.VersionList, true
	case model.DialogLogTimeFilter:
		return m.TimeRangeList, true
	}
	return list.Model{}, false
}

// renderListDialog sizes l to its options, at most maxHeight rows including
// the dialog border, and draws it. Long lists page to keep the highlight
// visible.
func renderListDialog(l list.Model, maxHeight int) string {
	values := model.SelectionValues(l)
	// the list title bar keeps a status gap and a spinner cell after the title
	width := runewidth.StringWidth(l.Title) + 3
	for _, v := range values {
		width = max(width, runewidth.StringWidth(v)+2)
	}
	rows := min(max(1, len(values)), max(1, maxHeight-4))
	l.SetSize(width, rows+1)
	return color.DialogStyle.Render(l.View())
}
