package model

import (
	"fmt"
	"io"

	"wukong/internal/color"
	"wukong/internal/tui/utils"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectionItem is one option of a dialog list.
type SelectionItem string

// FilterValue implements list.Item.
func (i SelectionItem) FilterValue() string { return string(i) }

// selectionDelegate draws one row per option and marks the highlighted one.
type selectionDelegate struct{}

func (d selectionDelegate) Height() int                             { return 1 }
func (d selectionDelegate) Spacing() int                            { return 0 }
func (d selectionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d selectionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(SelectionItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, color.SelectedStyle.Render(utils.PadRight("▶ "+string(i), m.Width())))
		return
	}
	fmt.Fprint(w, utils.PadRight("  "+string(i), m.Width()))
}

// NewSelectionList creates a dialog list. Moving past either end wraps
// around; there is no filtering.
func NewSelectionList(title string) list.Model {
	l := list.New(nil, selectionDelegate{}, 0, 0)
	l.Title = title
	l.InfiniteScrolling = true
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("option", "options")
	l.Styles.Title = color.PanelTitleStyle
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.NoItems = color.SubtleTextStyle
	return l
}

// SetSelectionItems replaces the options of l, highlighting current when
// present.
func SetSelectionItems(l *list.Model, values []string, current string) {
	items := make([]list.Item, len(values))
	selected := 0
	for i, v := range values {
		items[i] = SelectionItem(v)
		if v == current {
			selected = i
		}
	}
	l.SetItems(items)
	l.Select(selected)
}

// SelectionValues returns the options of l.
func SelectionValues(l list.Model) []string {
	items := l.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if v, ok := it.(SelectionItem); ok {
			out = append(out, string(v))
		}
	}
	return out
}

// SelectedValue returns the highlighted option of l.
func SelectedValue(l list.Model) (string, bool) {
	v, ok := l.SelectedItem().(SelectionItem)
	return string(v), ok
}
