// Package logbuffer implements the bounded log entry buffer shown on the logs
// tab, together with its search/filter matcher and scroll state.
package logbuffer

import (
	"wukong/internal/api"

	"github.com/google/uuid"
)

// Buffer is a capacity-bounded, order-preserving sequence of log entries.
//
// Every buffer carries an id. Whenever the query behind the entries changes
// the buffer is Reset and receives a fresh id; responses tagged with an old
// id are then rejected by Append. Buffer is not safe for concurrent use, the
// owner is expected to serialise access.
type Buffer struct {
	id            string
	entries       []api.LogEntry
	capacity      int
	lastTimestamp string
	evicted       int64
}

// New creates an empty buffer holding at most capacity entries.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffer{
		id:       uuid.NewString(),
		capacity: capacity,
	}
}

// ID returns the token identifying the current query generation.
func (b *Buffer) ID() string { return b.id }

// Reset clears entries and the tailing cursor and returns the new id.
func (b *Buffer) Reset() string {
	b.id = uuid.NewString()
	b.entries = nil
	b.lastTimestamp = ""
	return b.id
}

// Append adds batch to the end of the buffer if id matches the current id.
// Oldest entries are evicted so the length never exceeds the capacity.
// It reports whether the batch was applied.
func (b *Buffer) Append(id string, batch []api.LogEntry) bool {
	if id != b.id {
		return false
	}
	if len(batch) == 0 {
		return true
	}

	b.entries = append(b.entries, batch...)
	if over := len(b.entries) - b.capacity; over > 0 {
		n := copy(b.entries, b.entries[over:])
		b.entries = b.entries[:n]
		b.evicted += int64(over)
	}
	if ts := batch[len(batch)-1].Timestamp; ts != "" {
		b.lastTimestamp = ts
	}
	return true
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *Buffer) Entries() []api.LogEntry {
	out := make([]api.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Buffer) Len() int      { return len(b.entries) }
func (b *Buffer) Capacity() int { return b.capacity }

// Full reports whether older entries have started to fall off.
func (b *Buffer) Full() bool { return len(b.entries) >= b.capacity }

// Evicted is the number of entries dropped over the buffer lifetime.
func (b *Buffer) Evicted() int64 { return b.evicted }

// LastTimestamp is the timestamp of the newest appended entry, or "".
func (b *Buffer) LastTimestamp() string { return b.lastTimestamp }

// Since returns the cursor for the next fetch: the last entry timestamp when
// one is known, otherwise the given relative window.
func (b *Buffer) Since(window string) string {
	if b.lastTimestamp != "" {
		return b.lastTimestamp
	}
	return window
}
