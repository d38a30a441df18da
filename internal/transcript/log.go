// Package transcript keeps the ordered record of one simulation's or
// interview's exchanged turns. The log is append-only with a single
// relaxation: the most recent entry matching a predicate may be patched in
// place while its content is still streaming. Entries are never reordered
// or deleted; discarding a conversation replaces the log wholesale.
package transcript

import (
	"sync"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// Log is safe for concurrent readers; writers are serialized by the owning
// send pipeline, the mutex only guards snapshot consistency.
type Log struct {
	mu      sync.Mutex
	entries []domain.Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append adds an entry at the tail.
func (l *Log) Append(entry domain.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// UpdateLast applies patch to the most recent entry matching the predicate
// and reports whether a match was found. No entry matching is a no-op.
func (l *Log) UpdateLast(match func(domain.Entry) bool, patch func(*domain.Entry)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if match(l.entries[i]) {
			patch(&l.entries[i])
			return true
		}
	}
	return false
}

// Clear discards every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Snapshot returns a copy of the entries in order.
func (l *Log) Snapshot() []domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the tail entry, if any.
func (l *Log) Last() (domain.Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return domain.Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// HasSender reports whether any entry was produced by the given sender.
func (l *Log) HasSender(sender domain.Sender) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Sender == sender {
			return true
		}
	}
	return false
}

// ByID matches an entry by identity; used with UpdateLast to patch a
// streaming placeholder.
func ByID(id string) func(domain.Entry) bool {
	return func(e domain.Entry) bool { return e.ID == id }
}
