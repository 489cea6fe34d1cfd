// Package audit provides the in-memory operation log: an append-only,
// unbounded trail owned by the composition root and threaded into the
// operations that record to it. State lives only for the process lifetime.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single operation log record.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
}

// Trail is an append-only, insertion-ordered operation log.
// Safe for concurrent use.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTrail creates an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Append records a timestamped entry with an optional key-value context.
func (t *Trail) Append(message string, kv map[string]any) {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Message:   message,
		Context:   kv,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, entry)
}

// Snapshot returns a copy of all entries in insertion order.
func (t *Trail) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)

	return entries
}

// Len returns the number of recorded entries.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
