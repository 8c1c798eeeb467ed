// Package unread maintains the per-session sets of message ids not yet
// marked READ.
package unread

import "sync"

// Index maps session ids to their unread message-id sets. Marking a message
// READ removes it from every session's set at once: the original system
// tracked read state globally, not per recipient, and that behavior is kept.
type Index struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{sets: make(map[string]map[string]struct{})}
}

// Track creates an empty unread set for a newly registered session.
func (i *Index) Track(sessionID string) {
	i.mu.Lock()
	if _, ok := i.sets[sessionID]; !ok {
		i.sets[sessionID] = make(map[string]struct{})
	}
	i.mu.Unlock()
}

// MarkUnread adds the message id to the session's unread set. Sessions the
// index has never seen get a set on demand, so delivery order relative to
// Track does not matter.
func (i *Index) MarkUnread(sessionID, messageID string) {
	i.mu.Lock()
	set, ok := i.sets[sessionID]
	if !ok {
		set = make(map[string]struct{})
		i.sets[sessionID] = set
	}
	set[messageID] = struct{}{}
	i.mu.Unlock()
}

// Forget removes the message id from every session's unread set. Used both
// when any session marks the message READ and when history evicts it.
func (i *Index) Forget(messageID string) {
	i.mu.Lock()
	for _, set := range i.sets {
		delete(set, messageID)
	}
	i.mu.Unlock()
}

// Snapshot returns the session's unread message ids in no particular order.
func (i *Index) Snapshot(sessionID string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	set := i.sets[sessionID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// CountsBySender groups the session's unread messages by their original
// sender. The resolver maps a message id to its sender; ids it can no
// longer resolve (evicted while still unread) are skipped.
func (i *Index) CountsBySender(sessionID string, resolve func(messageID string) (senderID string, ok bool)) map[string]int {
	counts := make(map[string]int)
	for _, id := range i.Snapshot(sessionID) {
		if sender, ok := resolve(id); ok {
			counts[sender]++
		}
	}
	return counts
}
