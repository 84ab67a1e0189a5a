package model

import (
	"time"

	"wukong/internal/logbuffer"
	"wukong/internal/network"
	"wukong/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// DefaultTimeRanges are offered by the log time range dialog.
var DefaultTimeRanges = []string{"5m", "15m", "1h", "6h", "24h"}

// Submitter accepts network events without blocking.
type Submitter interface {
	Submit(ev network.Event)
}

// Config wires the model to the rest of the dashboard.
type Config struct {
	Session      *state.Session
	Events       Submitter
	TickInterval time.Duration
	TailInterval time.Duration
	// Clipboard writes copied log lines. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the UI-local state of the dashboard. It is owned by the
// bubbletea loop; everything shared with the dispatcher lives in Session and
// is read through Snapshot once per tick.
type Model struct {
	Session   *state.Session
	Events    Submitter
	Clipboard func(string) error

	// Snapshot is the session copy rendered this frame.
	Snapshot state.Snapshot

	Nav         *Navigator
	Keys        KeyMap
	SelectedTab Tab
	// Expanded shows the active block full screen.
	Expanded bool
	ShowHelp bool

	ShowSearchBar bool
	ShowFilterBar bool
	Search        TextInput
	Include       TextInput
	Exclude       TextInput

	NamespaceList list.Model
	VersionList   list.Model
	TimeRangeList list.Model

	// Scroll is the log position in entries; LogViewport shows it.
	Scroll      logbuffer.Scroll
	LogViewport viewport.Model
	Wrap        bool
	Tailing     bool

	matcher      *logbuffer.Matcher
	matcherQuery logbuffer.Query

	Width  int
	Height int
	// LogViewportHeight is the number of log rows the view can show.
	LogViewportHeight int

	TickInterval time.Duration
	TailInterval time.Duration
	Poll         PollState

	Spinner spinner.Model
	Help    help.Model

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	Quitting bool
}

// PollState remembers what the tick poller already requested.
type PollState struct {
	// LogBuffer is the buffer id the last full log fetch was issued for.
	LogBuffer string
	// LogFetched is the logs panel fetch count when the last log request
	// was submitted; a new tail waits until it moves.
	LogFetched uint64
	LastTail   time.Time

	SelectionReady bool
	AppsignalFor   string
	DatabasesFor   string
	// DeniedHandled is the database fetch count whose denial was reported.
	DeniedHandled uint64
}

// Route returns the current navigation route.
func (m *Model) Route() Route {
	return m.Nav.Current()
}

// LogQuery is the search or filter text currently applied to the logs.
func (m *Model) LogQuery() logbuffer.Query {
	switch {
	case m.ShowSearchBar:
		return logbuffer.Query{Mode: logbuffer.ModeSearch, Search: m.Search.Value}
	case m.ShowFilterBar:
		return logbuffer.Query{Mode: logbuffer.ModeFilter, Include: m.Include.Value, Exclude: m.Exclude.Value}
	}
	return logbuffer.Query{}
}

// Matcher returns LogQuery compiled, recompiling only when the query
// changed.
func (m *Model) Matcher() *logbuffer.Matcher {
	q := m.LogQuery()
	if m.matcher == nil || q != m.matcherQuery {
		m.matcher = logbuffer.Compile(q)
		m.matcherQuery = q
	}
	return m.matcher
}

// Submit forwards ev to the dispatcher.
func (m *Model) Submit(ev network.Event) {
	if m.Events != nil {
		m.Events.Submit(ev)
	}
}

// SetStatusMessage shows message in the status bar and clears it after
// clearAfter unless another message replaced it.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}
