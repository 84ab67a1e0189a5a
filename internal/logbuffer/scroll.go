package logbuffer

// HorizontalStep is how many cells one left/right press moves the view.
const HorizontalStep = 5

// Scroll is the position over the visible log lines, counted in entries.
type Scroll struct {
	Offset             int
	AutoScrollToBottom bool
}

// NewScroll returns a scroll that follows the newest entries.
func NewScroll() Scroll {
	return Scroll{AutoScrollToBottom: true}
}

// Follow pins the viewport to the bottom while auto-scroll is on. It is a
// no-op until the viewport height is known.
func (s *Scroll) Follow(total, viewportHeight int) {
	if !s.AutoScrollToBottom || viewportHeight <= 0 {
		return
	}
	s.Offset = max(0, total-viewportHeight)
}

// Up scrolls towards older entries and stops following.
func (s *Scroll) Up(n int) {
	s.AutoScrollToBottom = false
	s.Offset = max(0, s.Offset-n)
}

// Down scrolls towards newer entries and stops following.
func (s *Scroll) Down(n, total int) {
	s.AutoScrollToBottom = false
	s.Offset = min(max(0, total-1), s.Offset+n)
}

// Hold stops following and keeps the current offset.
func (s *Scroll) Hold() {
	s.AutoScrollToBottom = false
}

// Reset resumes following.
func (s *Scroll) Reset() {
	*s = NewScroll()
}
