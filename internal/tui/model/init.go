package model

import (
	"time"

	"wukong/internal/logbuffer"
	"wukong/internal/network"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultTickInterval = 250 * time.Millisecond
	defaultTailInterval = 5 * time.Second
)

// New creates the dashboard model.
func New(cfg Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	tick := cfg.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}
	tail := cfg.TailInterval
	if tail <= 0 {
		tail = defaultTailInterval
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	vp := viewport.New(0, 0)
	vp.SetHorizontalStep(logbuffer.HorizontalStep)

	m := &Model{
		Session:       cfg.Session,
		Events:        cfg.Events,
		Clipboard:     copyFn,
		Nav:           NewNavigator(),
		Keys:          DefaultKeyMap(),
		SelectedTab:   TabGCloud,
		NamespaceList: NewSelectionList("Select namespace"),
		VersionList:   NewSelectionList("Select version"),
		TimeRangeList: NewSelectionList("Show logs since"),
		Scroll:        logbuffer.NewScroll(),
		LogViewport:   vp,
		Tailing:       true,
		TickInterval:  tick,
		TailInterval:  tail,
		Spinner:       s,
		Help:          help.New(),
	}
	if cfg.Session != nil {
		m.Snapshot = cfg.Session.Snapshot()
		SetSelectionItems(&m.TimeRangeList, DefaultTimeRanges, m.Snapshot.TimeRange)
	}
	return m
}

// Init submits the startup events and starts the ticker.
func (m *Model) Init() tea.Cmd {
	m.Submit(network.VerifyOktaRefreshToken)
	m.Submit(network.VerifyGCloudToken)
	m.Submit(network.GetDeployments)
	return tea.Batch(m.Tick(), m.Spinner.Tick)
}

// Tick schedules the next TickMsg.
func (m *Model) Tick() tea.Cmd {
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
