package controller

import (
	"wukong/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for the dashboard.
func NewProgram(cfg model.Config, opts ...tea.ProgramOption) *tea.Program {
	m := model.New(cfg)
	app := NewAppModel(m)
	return tea.NewProgram(app, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}
