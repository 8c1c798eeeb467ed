// Package history keeps the bounded, ordered log of chat messages.
package history

import (
	"sync"

	"github.com/nfrund/chathub/internal/domain"
)

// entry wraps one stored message with its own lock so updates to distinct
// messages never serialize against each other. The id is duplicated outside
// the message so eviction can read it without taking the entry lock.
type entry struct {
	id  string
	mu  sync.Mutex
	msg domain.Message
}

// Log is an append-only, capacity-bounded message log with id lookup.
// Messages are stored as immutable snapshots: Update applies its edit to a
// copy and swaps it in, and every read hands out an independent clone.
type Log struct {
	cap  int
	mu   sync.RWMutex // guards order and byID
	list []*entry     // insertion order, oldest first
	byID map[string]*entry
}

// NewLog creates a log that retains at most cap messages, evicting oldest
// first. A non-positive cap panics: the hub always runs with a real bound.
func NewLog(cap int) *Log {
	if cap <= 0 {
		panic("history: cap must be positive")
	}
	return &Log{cap: cap, byID: make(map[string]*entry)}
}

// Append inserts the message at the tail. If the log now exceeds its cap
// the oldest entry is removed from both the list and the id index in the
// same critical section, and its id is returned so dependent indices (the
// unread sets) can be scrubbed. An empty return means nothing was evicted.
func (l *Log) Append(msg domain.Message) (evicted string) {
	e := &entry{id: msg.ID, msg: msg.Clone()}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.list = append(l.list, e)
	l.byID[e.id] = e
	if len(l.list) > l.cap {
		head := l.list[0]
		l.list = l.list[1:]
		delete(l.byID, head.id)
		evicted = head.id
	}
	return evicted
}

// All returns an ordered snapshot of the log, oldest first.
func (l *Log) All() []domain.Message {
	l.mu.RLock()
	entries := make([]*entry, len(l.list))
	copy(entries, l.list)
	l.mu.RUnlock()

	out := make([]domain.Message, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.msg.Clone())
		e.mu.Unlock()
	}
	return out
}

// Get returns a snapshot of one message by id.
func (l *Log) Get(id string) (domain.Message, bool) {
	l.mu.RLock()
	e, ok := l.byID[id]
	l.mu.RUnlock()
	if !ok {
		return domain.Message{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msg.Clone(), true
}

// Len returns the current number of retained messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.list)
}

// Update applies fn to a copy of the stored message and swaps the copy in,
// returning the new snapshot. Updates to the same id are serialized on the
// entry lock; updates to different ids proceed in parallel. An update that
// races eviction of the same id may still report success against the final
// snapshot, which is harmless since the entry is already unreachable.
func (l *Log) Update(id string, fn func(*domain.Message)) (domain.Message, bool) {
	l.mu.RLock()
	e, ok := l.byID[id]
	l.mu.RUnlock()
	if !ok {
		return domain.Message{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	updated := e.msg.Clone()
	fn(&updated)
	e.msg = updated
	return updated.Clone(), true
}
