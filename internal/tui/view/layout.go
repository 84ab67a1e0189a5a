package view

import (
	"wukong/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight    = 1
	tabsHeight      = 1
	statusBarHeight = 1

	bottomRowHeight = 8
	databaseHeight  = 6
	minMiddleHeight = 7

	// panelChrome is the border plus the title row.
	panelChrome = 3
)

// layout is the height of every dashboard row for the current window.
type layout struct {
	middle   int
	bottom   int
	database int
	help     int
}

func computeLayout(m *model.Model) layout {
	l := layout{help: lipgloss.Height(renderHelp(m))}
	avail := max(0, m.Height-headerHeight-tabsHeight-statusBarHeight-l.help)

	if m.Expanded {
		l.middle = avail
		return l
	}

	l.bottom = bottomRowHeight
	l.database = databaseHeight
	l.middle = avail - l.bottom - l.database
	if l.middle < minMiddleHeight {
		l.database = 0
		l.middle = avail - l.bottom
	}
	if l.middle < minMiddleHeight {
		l.bottom = 0
		l.middle = avail
	}
	return l
}

// LogViewportHeight is the number of log rows the middle panel shows. It is
// 0 until the window size is known.
func LogViewportHeight(m *model.Model) int {
	if m.Width <= 0 || m.Height <= 0 {
		return 0
	}
	h := computeLayout(m).middle - panelChrome
	if m.ShowSearchBar || m.ShowFilterBar {
		h--
	}
	return max(0, h)
}
