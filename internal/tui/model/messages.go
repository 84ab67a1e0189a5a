package model

import "time"

// TickMsg drives the render loop: every tick the session is snapshotted and
// the poller decides which events to submit.
type TickMsg time.Time

// ClearStatusBarMsg clears the status bar message.
type ClearStatusBarMsg struct{}
