package view

import (
	"fmt"
	"strings"
	"testing"

	"wukong/internal/api"
	"wukong/internal/logbuffer"
	"wukong/internal/state"
	"wukong/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T, width, height int) (*model.Model, *state.Session) {
	t.Helper()
	s := state.New("wukong", 100, "5m")
	s.SetDeployments([]api.Deployment{
		{Environment: "prod", Version: "blue", Enabled: true, Status: "SUCCESS", DeployedRef: "0123456789abcdef"},
		{Environment: "prod", Version: "green", Enabled: true, Status: "FAILURE"},
	})
	s.SetBuilds([]api.Build{{Name: "main-build-42", Commits: []api.Commit{{ID: "abcdef0123", MessageHeadline: "Fix login redirect"}}}})

	m := model.New(model.Config{Session: s, Clipboard: func(string) error { return nil }})
	m.Width, m.Height = width, height
	m.Help.Width = width
	m.Snapshot = s.Snapshot()
	return m, s
}

func TestLogViewportHeight(t *testing.T) {
	m, _ := testModel(t, 0, 0)
	assert.Zero(t, LogViewportHeight(m), "unknown window size")

	m, _ = testModel(t, 120, 40)
	// 40 rows minus header, tabs, status bar, help, builds row, database row
	// and the panel chrome.
	assert.Equal(t, 19, LogViewportHeight(m))

	m.ShowSearchBar = true
	assert.Equal(t, 18, LogViewportHeight(m))

	m.ShowSearchBar = false
	m.Expanded = true
	assert.Equal(t, 33, LogViewportHeight(m))
}

func TestLogViewportHeightSmallWindow(t *testing.T) {
	m, _ := testModel(t, 80, 20)
	// no room for the database row
	assert.Equal(t, 5, LogViewportHeight(m))

	m.Height = 12
	assert.Equal(t, 5, LogViewportHeight(m))

	m.Height = 3
	assert.Zero(t, LogViewportHeight(m))
}

func TestLogTitle(t *testing.T) {
	tests := []struct {
		name    string
		snap    state.Snapshot
		visible int
		tailing bool
		want    string
	}{
		{
			name:    "plain",
			snap:    state.Snapshot{},
			visible: 12,
			want:    "Total 12 logs",
		},
		{
			name:    "truncated and tailing",
			snap:    state.Snapshot{LogsTruncated: true, TimeRange: "5m"},
			visible: 100,
			tailing: true,
			want:    "Total 100+ logs [Tailing] [last 5m]",
		},
		{
			name:    "error severity",
			snap:    state.Snapshot{Severity: api.SeverityErrorAndAbove},
			visible: 3,
			want:    "Total 3 logs [Error and above]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logTitle(tt.snap, tt.visible, tt.tailing))
		})
	}
}

// fillViewport lays the logs into the viewport the way the controller does
// after every tick.
func fillViewport(m *model.Model) {
	content, _ := LogContent(m, LogViewportWidth(m))
	m.LogViewport.Width = LogViewportWidth(m)
	m.LogViewport.Height = LogViewportHeight(m)
	m.LogViewport.SetContent(content)
	m.LogViewport.GotoBottom()
}

func TestLogContent(t *testing.T) {
	tests := []struct {
		name       string
		wrap       bool
		width      int
		wantRows   []string
		wantStarts []int
	}{
		{
			name:       "one row per line",
			width:      10,
			wantRows:   []string{"time=t0 level=INFO request served", "time=t1 level=WARN slow"},
			wantStarts: []int{0, 1},
		},
		{
			name:       "wrapped at the width",
			wrap:       true,
			width:      10,
			wantRows:   []string{"time=t0 le", "vel=INFO r", "equest ser", "ved", "time=t1 le", "vel=WARN s", "low"},
			wantStarts: []int{0, 4},
		},
		{
			name:       "no width leaves lines whole",
			wrap:       true,
			width:      0,
			wantRows:   []string{"time=t0 level=INFO request served", "time=t1 level=WARN slow"},
			wantStarts: []int{0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := testModel(t, 120, 40)
			m.Snapshot.LogEntries = []api.LogEntry{
				{Timestamp: "t0", Level: "INFO", Payload: "request served"},
				{Timestamp: "t1", Level: "WARN", Payload: "slow"},
			}
			m.Wrap = tt.wrap

			content, starts := LogContent(m, tt.width)
			assert.Equal(t, strings.Join(tt.wantRows, "\n"), content)
			assert.Equal(t, tt.wantStarts, starts)
		})
	}
}

func TestLogContentFollowsSearch(t *testing.T) {
	m, _ := testModel(t, 120, 40)
	m.Snapshot.LogEntries = []api.LogEntry{
		{Timestamp: "t0", Level: "INFO", Payload: "ok"},
		{Timestamp: "t1", Level: "ERROR", Payload: "boom\nstack"},
	}
	m.ShowFilterBar = true
	m.Include.Value = "ERROR"

	content, starts := LogContent(m, 80)
	assert.Equal(t, []int{0}, starts)
	assert.Equal(t, "time=t1 level=ERROR boom stack", content)
}

func TestLogContentWideRunes(t *testing.T) {
	m, _ := testModel(t, 120, 40)
	m.Snapshot.LogEntries = []api.LogEntry{{Timestamp: "t0", Level: "INFO", Payload: "日本語ログ"}}
	m.Wrap = true

	content, _ := LogContent(m, 5)
	rows := strings.Split(content, "\n")
	assert.Equal(t, []string{"日本", "語ロ", "グ"}, rows[len(rows)-3:])
	for _, r := range rows {
		assert.LessOrEqual(t, lipgloss.Width(r), 5)
	}
}

func TestHighlightLineKeepsText(t *testing.T) {
	line := logbuffer.Line{Text: "level=ERROR boom", Highlights: []logbuffer.Span{{Start: 6, End: 11}}}
	row := highlightLine(line)
	assert.Equal(t, len("level=ERROR boom"), lipgloss.Width(row))
	assert.Contains(t, row, "ERROR")
	assert.Equal(t, "a b", highlightLine(logbuffer.Line{Text: "a\nb"}))
}

func TestRenderLogsScrollsHorizontally(t *testing.T) {
	m, s := testModel(t, 60, 40)
	req, ok := s.BeginLogFetch(false)
	require.True(t, ok)
	require.True(t, s.ApplyLogEntries(req.BufferID, []api.LogEntry{
		{Timestamp: "t0", Level: "INFO", Payload: strings.Repeat("x", 100) + "TAIL"},
	}))
	m.Snapshot = s.Snapshot()
	fillViewport(m)
	assert.NotContains(t, Render(m), "TAIL")

	for range 20 {
		m.LogViewport.ScrollRight(logbuffer.HorizontalStep)
	}
	assert.Contains(t, Render(m), "TAIL")
}

func TestRenderDashboard(t *testing.T) {
	m, s := testModel(t, 120, 40)
	req, ok := s.BeginLogFetch(false)
	require.True(t, ok)
	entries := make([]api.LogEntry, 5)
	for i := range entries {
		entries[i] = api.LogEntry{Timestamp: fmt.Sprintf("t%d", i), Level: "INFO", Payload: fmt.Sprintf("payload %d", i)}
	}
	require.True(t, s.ApplyLogEntries(req.BufferID, entries))
	m.Snapshot = s.Snapshot()
	fillViewport(m)

	out := Render(m)
	assert.Equal(t, 40, lipgloss.Height(out))
	for _, want := range []string{"namespace: prod", "version: blue", "Total 5 logs", "payload 4", "Builds", "main-build-42", "Deployments", "0123456", "Database"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderWaitsForWindowSize(t *testing.T) {
	m, _ := testModel(t, 0, 0)
	assert.Contains(t, Render(m), "waiting for window size")

	m.Quitting = true
	assert.Empty(t, Render(m))
}

func TestRenderNamespaceDialog(t *testing.T) {
	m, _ := testModel(t, 100, 40)
	model.SetSelectionItems(&m.NamespaceList, []string{"prod", "staging"}, "staging")
	m.Nav.Push(model.Route{Active: model.Dialog(model.DialogNamespaceSelection), Hovered: model.Dialog(model.DialogNamespaceSelection)})

	out := Render(m)
	assert.Contains(t, out, "Select namespace")
	assert.Contains(t, out, "▶ staging")
	assert.NotContains(t, out, "Total 0 logs")
}

func TestRenderExpandedPanel(t *testing.T) {
	m, _ := testModel(t, 100, 30)
	m.Nav.Push(model.Route{Active: model.Build(), Hovered: model.Build()})
	m.Expanded = true

	out := Render(m)
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Contains(t, out, "main-build-42")
	assert.NotContains(t, out, "Deployments")
}

func TestRenderPanelErrors(t *testing.T) {
	m, s := testModel(t, 120, 40)
	s.FailFetch(state.PanelDatabase, fmt.Errorf("list instances: %w", api.ErrPermissionDenied))
	s.SetPanelDisabled(state.PanelAppsignal)
	m.Snapshot = s.Snapshot()

	assert.Contains(t, Render(m), "You don't have permission")

	m.SelectedTab = model.TabAppsignal
	assert.Contains(t, Render(m), "Not configured for this namespace")
}

func TestRenderAppsignal(t *testing.T) {
	m, s := testModel(t, 120, 40)
	s.SetAppsignal(api.AppsignalMetrics{
		ErrorRate:  [3]float64{1.5, 0.25, 0},
		Throughput: [3]float64{1200, 30000, 200000},
		Latency:    api.Latency{Mean: 12.5, P90: 40, P95: 55.25},
	})
	m.Snapshot = s.Snapshot()
	m.SelectedTab = model.TabAppsignal

	out := Render(m)
	assert.Contains(t, out, "1.50%")
	assert.Contains(t, out, "30000")
	assert.Contains(t, out, "p95 55.2 ms")
	assert.True(t, strings.Contains(out, "7d"))
}
