package controller

import (
	"wukong/internal/tui/model"
	"wukong/internal/tui/view"
)

// syncLogViewport lays the visible logs out for the current window and
// scrolls the viewport to the log position. While auto-scroll is on the
// position follows the newest entry, tailing or not.
func syncLogViewport(m *model.Model) {
	m.LogViewportHeight = view.LogViewportHeight(m)
	width := view.LogViewportWidth(m)
	content, starts := view.LogContent(m, width)

	m.Scroll.Follow(len(starts), m.LogViewportHeight)

	vp := &m.LogViewport
	vp.Width = width
	vp.Height = m.LogViewportHeight
	vp.SetContent(content)
	switch {
	case len(starts) == 0:
		vp.GotoTop()
	case m.Scroll.AutoScrollToBottom:
		vp.GotoBottom()
	default:
		vp.SetYOffset(starts[min(m.Scroll.Offset, len(starts)-1)])
	}
}

// resetScroll returns the logs to the left edge and resumes following.
func resetScroll(m *model.Model) {
	m.Scroll.Reset()
	m.LogViewport.SetXOffset(0)
}
