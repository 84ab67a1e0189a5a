package logbuffer

import (
	"testing"

	"wukong/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(level, payload string) api.LogEntry {
	return api.LogEntry{Timestamp: "2024-05-01T10:00:00Z", Level: level, Payload: payload}
}

func payloads(entries []api.LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Payload
	}
	return out
}

func TestFilterIncludeAndExclude(t *testing.T) {
	entries := []api.LogEntry{
		entry("INFO", "request E1 served"),
		entry("DEBUG", "e1 cache warmup"),
		entry("INFO", "request e2 served"),
		entry("INFO", "debug flag e1 set"),
		entry("ERROR", "node-e1 failed"),
	}

	m := Compile(Query{Mode: ModeFilter, Include: "e1", Exclude: "debug"})
	require.Empty(t, m.Warning())

	visible := m.Apply(entries)
	assert.Equal(t, []string{"request E1 served", "node-e1 failed"}, payloads(visible))

	line := visible[0].String()
	spans := m.Highlights(line)
	require.Len(t, spans, 1)
	assert.Equal(t, "E1", line[spans[0].Start:spans[0].End])
}

func TestFilterExcludeOnly(t *testing.T) {
	entries := []api.LogEntry{entry("INFO", "a"), entry("DEBUG", "b")}

	m := Compile(Query{Mode: ModeFilter, Exclude: "  debug "})
	assert.Equal(t, []string{"a"}, payloads(m.Apply(entries)))
	assert.Empty(t, m.Highlights(entries[0].String()))
}

func TestSearchMode(t *testing.T) {
	entries := []api.LogEntry{entry("INFO", "user login"), entry("INFO", "user logout"), entry("WARN", "disk")}

	m := Compile(Query{Mode: ModeSearch, Search: "LOG(IN|OUT)", Include: "disk"})
	assert.Equal(t, []string{"user login", "user logout"}, payloads(m.Apply(entries)))
}

func TestEmptyQueryKeepsEverything(t *testing.T) {
	entries := []api.LogEntry{entry("INFO", "a"), entry("INFO", "b")}

	for _, q := range []Query{{}, {Mode: ModeSearch, Search: "   "}, {Mode: ModeFilter}} {
		m := Compile(q)
		assert.False(t, m.Active())
		assert.Equal(t, entries, m.Apply(entries))
	}
}

func TestInvalidPatternIsIgnored(t *testing.T) {
	entries := []api.LogEntry{entry("INFO", "a [b"), entry("DEBUG", "c")}

	m := Compile(Query{Mode: ModeFilter, Include: "[b", Exclude: "debug"})
	assert.Contains(t, m.Warning(), `invalid include pattern "[b" ignored`)
	assert.Equal(t, []string{"a [b"}, payloads(m.Apply(entries)))

	m = Compile(Query{Mode: ModeSearch, Search: "(unclosed"})
	assert.NotEmpty(t, m.Warning())
	assert.False(t, m.Active())
	assert.Len(t, m.Apply(entries), 2)
}

func TestHighlightsMergeOverlaps(t *testing.T) {
	m := Compile(Query{Mode: ModeSearch, Search: "aa"})
	spans := m.Highlights("aaaa b aa")
	assert.Equal(t, []Span{{0, 4}, {7, 9}}, spans)
}

func TestMergeSpans(t *testing.T) {
	tests := []struct {
		name string
		in   []Span
		want []Span
	}{
		{"empty", nil, nil},
		{"single", []Span{{1, 2}}, []Span{{1, 2}}},
		{"unsorted disjoint", []Span{{5, 6}, {1, 2}}, []Span{{1, 2}, {5, 6}}},
		{"overlapping", []Span{{1, 4}, {3, 6}}, []Span{{1, 6}}},
		{"contained", []Span{{1, 10}, {2, 3}}, []Span{{1, 10}}},
		{"touching", []Span{{1, 3}, {3, 5}}, []Span{{1, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeSpans(tt.in))
		})
	}
}
