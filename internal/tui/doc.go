// Package tui is the interactive terminal dashboard of wukong.
//
// The dashboard follows a Model-View-Controller split on top of Bubble Tea:
//
//   - model (internal/tui/model): UI-local state such as the navigation
//     stack, text inputs, dialog lists and scroll position, plus the session
//     snapshot taken on every tick.
//   - view (internal/tui/view): pure rendering of the model with lipgloss.
//   - controller (internal/tui/controller): key routing per active block and
//     the tick poller that decides which network events to submit.
//
// Everything shared with the network dispatcher lives in state.Session. The
// render loop never waits on the network: it submits events and picks up
// their results from the next snapshot.
package tui
