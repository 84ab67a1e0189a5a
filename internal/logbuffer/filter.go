package logbuffer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"wukong/internal/api"
)

// Mode selects how the text inputs restrict the visible entries.
type Mode int

const (
	ModeNone Mode = iota
	// ModeSearch hides entries not matching a single pattern.
	ModeSearch
	// ModeFilter drops entries matching Exclude, then keeps entries
	// matching Include when Include is set.
	ModeFilter
)

// Query is the raw text typed by the user.
type Query struct {
	Mode    Mode
	Search  string
	Include string
	Exclude string
}

// Span is a half-open byte range [Start, End) inside a rendered line.
type Span struct {
	Start int
	End   int
}

// Matcher is a compiled Query. A pattern that does not compile is ignored
// and reported through Warning.
type Matcher struct {
	search  *regexp.Regexp
	include *regexp.Regexp
	exclude *regexp.Regexp
	warning string
}

// Compile builds the matcher for q. Patterns are matched case-insensitively
// after trimming surrounding whitespace.
func Compile(q Query) *Matcher {
	m := &Matcher{}
	var warnings []string

	compile := func(label, input string) *regexp.Regexp {
		re, err := compilePattern(input)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %s pattern %q ignored", label, strings.TrimSpace(input)))
			return nil
		}
		return re
	}

	switch q.Mode {
	case ModeSearch:
		m.search = compile("search", q.Search)
	case ModeFilter:
		m.include = compile("include", q.Include)
		m.exclude = compile("exclude", q.Exclude)
	}

	m.warning = strings.Join(warnings, "; ")
	return m
}

func compilePattern(input string) (*regexp.Regexp, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + trimmed)
}

// Warning describes patterns that were ignored, or "".
func (m *Matcher) Warning() string { return m.warning }

// Active reports whether any pattern restricts the entries.
func (m *Matcher) Active() bool {
	return m.search != nil || m.include != nil || m.exclude != nil
}

// Match reports whether a rendered line stays visible.
func (m *Matcher) Match(line string) bool {
	if m.search != nil && !m.search.MatchString(line) {
		return false
	}
	if m.exclude != nil && m.exclude.MatchString(line) {
		return false
	}
	if m.include != nil && !m.include.MatchString(line) {
		return false
	}
	return true
}

// Apply returns the entries that stay visible, preserving order.
func (m *Matcher) Apply(entries []api.LogEntry) []api.LogEntry {
	if !m.Active() {
		return entries
	}
	out := make([]api.LogEntry, 0, len(entries))
	for _, e := range entries {
		if m.Match(e.String()) {
			out = append(out, e)
		}
	}
	return out
}

// Highlights returns the sorted, non-overlapping spans of line to emphasise.
func (m *Matcher) Highlights(line string) []Span {
	re := m.search
	if re == nil {
		re = m.include
	}
	if re == nil {
		return nil
	}

	locs := re.FindAllStringIndex(line, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		if loc[1] > loc[0] {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
	}
	return mergeSpans(spans)
}

// mergeSpans sorts spans and joins those that overlap or touch.
func mergeSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	merged := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
