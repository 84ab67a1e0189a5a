package components

import (
	"strings"

	"wukong/internal/color"
	"wukong/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// Focus is how a panel takes part in navigation.
type Focus int

const (
	FocusNone Focus = iota
	FocusHovered
	FocusActive
)

// Panel is a bordered dashboard region with a title line.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focus   Focus
}

// NewPanel creates a panel with the given outer dimensions.
func NewPanel(title string, width, height int) *Panel {
	return &Panel{Title: title, Width: width, Height: height}
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithFocus sets the focus state
func (p *Panel) WithFocus(f Focus) *Panel {
	p.Focus = f
	return p
}

// InnerHeight is the number of content rows below the title.
func (p *Panel) InnerHeight() int {
	return max(0, p.Height-p.style().GetVerticalFrameSize()-1)
}

// InnerWidth is the number of cells available per content row.
func (p *Panel) InnerWidth() int {
	return max(0, p.Width-p.style().GetHorizontalFrameSize())
}

// Render returns the styled panel, exactly Width x Height cells.
func (p *Panel) Render() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	style := p.style()
	innerWidth := p.InnerWidth()
	innerHeight := p.InnerHeight()

	lines := []string{color.PanelTitleStyle.Render(utils.TruncateString(p.Title, innerWidth))}
	if p.Content != "" {
		content := strings.Split(p.Content, "\n")
		if len(content) > innerHeight {
			content = content[:innerHeight]
		}
		for _, line := range content {
			if lipgloss.Width(line) > innerWidth {
				line = lipgloss.NewStyle().MaxWidth(innerWidth).Render(line)
			}
			lines = append(lines, line)
		}
	}
	for len(lines) < innerHeight+1 {
		lines = append(lines, "")
	}

	return style.
		Width(innerWidth).
		Height(innerHeight + 1).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) style() lipgloss.Style {
	switch p.Focus {
	case FocusActive:
		return color.PanelActiveStyle
	case FocusHovered:
		return color.PanelHoveredStyle
	default:
		return color.PanelStyle
	}
}
