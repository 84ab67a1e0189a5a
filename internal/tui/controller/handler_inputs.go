package controller

import (
	"wukong/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// editInput applies an editing key to in. Only the arrow keys move the
// cursor so that h and l can be typed. It reports whether the value changed.
func editInput(in *model.TextInput, msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			in.Insert(r)
		}
		return len(msg.Runes) > 0
	case tea.KeySpace:
		in.Insert(' ')
		return true
	case tea.KeyBackspace:
		before := in.Value
		in.Delete()
		return in.Value != before
	case tea.KeyLeft:
		in.Left()
	case tea.KeyRight:
		in.Right()
	}
	return false
}

// closeInput leaves the input dialog. Enter keeps the query applied, Esc
// clears it and hides the bar.
func closeInput(m *model.Model, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.Keys.Enter):
		m.Nav.Pop()
		return true
	case key.Matches(msg, m.Keys.Back):
		m.ShowSearchBar = false
		m.ShowFilterBar = false
		m.Search.Reset()
		m.Include.Reset()
		m.Exclude.Reset()
		resetScroll(m)
		m.Nav.Pop()
		return true
	}
	return false
}

func handleSearchKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if closeInput(m, msg) {
		return m, nil
	}
	if editInput(&m.Search, msg) {
		resetScroll(m)
	}
	return m, nil
}

func handleIncludeKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if closeInput(m, msg) {
		return m, nil
	}
	if key.Matches(msg, m.Keys.NextInput) || (msg.Type == tea.KeyRight && m.Include.AtEnd()) {
		switchInput(m, model.DialogLogExcludeFilter)
		return m, nil
	}
	if editInput(&m.Include, msg) {
		resetScroll(m)
	}
	return m, nil
}

func handleExcludeKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if closeInput(m, msg) {
		return m, nil
	}
	if key.Matches(msg, m.Keys.NextInput) || (msg.Type == tea.KeyLeft && m.Exclude.AtStart()) {
		switchInput(m, model.DialogLogIncludeFilter)
		return m, nil
	}
	if editInput(&m.Exclude, msg) {
		resetScroll(m)
	}
	return m, nil
}

func switchInput(m *model.Model, ctx model.DialogContext) {
	m.Nav.Set(model.Route{Active: model.Dialog(ctx), Hovered: model.Dialog(ctx)})
}
