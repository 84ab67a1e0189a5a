package controller

import (
	"time"

	"wukong/internal/tui/model"
	"wukong/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerSubsystem = "Controller"

// Update is the central message routing function of the dashboard.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = routeKey(m, msg)
		syncLogViewport(m)
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		syncLogViewport(m)
		return m, nil

	case model.TickMsg:
		return handleTick(m, time.Time(msg))

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	logging.Debug(controllerSubsystem, "ignored message %T", msg)
	return m, nil
}
