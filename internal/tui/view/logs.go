package view

import (
	"fmt"
	"strings"

	"wukong/internal/api"
	"wukong/internal/color"
	"wukong/internal/logbuffer"
	"wukong/internal/state"
	"wukong/internal/tui/components"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/x/ansi"
)

// logTitle renders "Total N logs", with a + when older entries were
// evicted, followed by the active modes.
func logTitle(snap state.Snapshot, visible int, tailing bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total %d", visible)
	if snap.LogsTruncated {
		b.WriteString("+")
	}
	b.WriteString(" logs")
	if snap.Severity == api.SeverityErrorAndAbove {
		fmt.Fprintf(&b, " [%s]", snap.Severity)
	}
	if tailing {
		b.WriteString(" [Tailing]")
	}
	if snap.TimeRange != "" {
		fmt.Fprintf(&b, " [last %s]", snap.TimeRange)
	}
	return b.String()
}

func renderLogs(m *model.Model, width, height int) string {
	snap := m.Snapshot
	matcher := m.Matcher()
	visible := len(matcher.Apply(snap.LogEntries))

	p := components.NewPanel(logTitle(snap, visible, m.Tailing), width, height).WithFocus(middleFocus(m))

	var rows []string
	if bar := renderInputBar(m, matcher); bar != "" {
		rows = append(rows, bar)
	}

	st := snap.Panel(state.PanelLogs)
	switch {
	case !snap.Selection.Complete():
		rows = append(rows, color.SubtleTextStyle.Render("Select a namespace and version to see logs"))
	case st.Err != "":
		rows = append(rows, panelError(st))
	case st.Loading && len(snap.LogEntries) == 0:
		rows = append(rows, m.Spinner.View()+" Loading logs...")
	case visible == 0:
		rows = append(rows, color.SubtleTextStyle.Render("No logs"))
	default:
		rows = append(rows, m.LogViewport.View())
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}

// LogViewportWidth is the number of cells per log row in the middle panel.
func LogViewportWidth(m *model.Model) int {
	return components.NewPanel("", m.Width, 0).WithFocus(middleFocus(m)).InnerWidth()
}

// LogContent renders every log line that passes the current search or
// filter, wrapping lines at width when wrapping is on. starts[i] is the row
// line i begins on.
func LogContent(m *model.Model, width int) (content string, starts []int) {
	lines, _ := logbuffer.Render(m.Snapshot.LogEntries, m.Matcher(), 0, 0)
	rows := make([]string, 0, len(lines))
	starts = make([]int, len(lines))
	for i, l := range lines {
		starts[i] = len(rows)
		row := highlightLine(l)
		if m.Wrap && width > 0 {
			rows = append(rows, strings.Split(ansi.Hardwrap(row, width, true), "\n")...)
			continue
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n"), starts
}

// highlightLine styles the matched spans of l. Embedded newlines become
// spaces so that every line starts on its own row.
func highlightLine(l logbuffer.Line) string {
	text := strings.ReplaceAll(l.Text, "\n", " ")
	var b strings.Builder
	pos := 0
	for _, s := range l.Highlights {
		if s.Start < pos || s.End > len(text) {
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString(color.HighlightStyle.Render(text[s.Start:s.End]))
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// renderInputBar shows the search or include/exclude inputs above the logs.
func renderInputBar(m *model.Model, matcher *logbuffer.Matcher) string {
	active := m.Route().Active
	var bar string
	switch {
	case m.ShowSearchBar:
		bar = inputField("Search", m.Search, active.IsDialog(model.DialogLogSearch))
	case m.ShowFilterBar:
		bar = inputField("Include", m.Include, active.IsDialog(model.DialogLogIncludeFilter)) + "  " +
			inputField("Exclude", m.Exclude, active.IsDialog(model.DialogLogExcludeFilter))
	default:
		return ""
	}
	if w := matcher.Warning(); w != "" {
		bar += "  " + color.WarningTextStyle.Render(w)
	}
	return bar
}

func inputField(label string, in model.TextInput, focused bool) string {
	value := color.InputStyle.Render(in.Value)
	if focused {
		runes := []rune(in.Value)
		cursor := min(in.Cursor, len(runes))
		under := " "
		rest := ""
		if cursor < len(runes) {
			under = string(runes[cursor])
			rest = string(runes[cursor+1:])
		}
		value = color.InputStyle.Render(string(runes[:cursor])) + color.CursorStyle.Render(under) + color.InputStyle.Render(rest)
	}
	labelStyle := color.LabelStyle
	if focused {
		labelStyle = color.SelectedStyle
	}
	return labelStyle.Render(label+": ") + value
}

// panelError renders a failed fetch, calling out permission problems.
func panelError(st state.PanelStatus) string {
	if st.Denied {
		return color.ErrorTextStyle.Render("You don't have permission to view this data")
	}
	return color.ErrorTextStyle.Render("Error: " + st.Err)
}
