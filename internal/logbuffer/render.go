package logbuffer

import "wukong/internal/api"

// Line is one visible log line with the spans to highlight.
type Line struct {
	Text       string
	Highlights []Span
}

// Render filters entries through m and returns the window of at most height
// lines starting at offset, plus the number of entries that passed the
// filter. A non-positive height returns every line from offset.
func Render(entries []api.LogEntry, m *Matcher, offset, height int) ([]Line, int) {
	visible := m.Apply(entries)
	total := len(visible)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if height > 0 && offset+height < total {
		end = offset + height
	}

	lines := make([]Line, 0, end-offset)
	for _, e := range visible[offset:end] {
		text := e.String()
		lines = append(lines, Line{Text: text, Highlights: m.Highlights(text)})
	}
	return lines, total
}
