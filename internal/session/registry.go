// Package session tracks every client session the hub has ever seen,
// together with the callback channel used to push notifications to it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/chathub/internal/domain"
)

// Channel is the push path the hub uses to notify a session asynchronously.
// Implementations must be safe for concurrent use; a failed delivery is the
// caller's signal that the session is unreachable right now.
type Channel interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// Registry is the authoritative owner of session records. All reads return
// value snapshots, never live views, so callers can iterate while other
// goroutines register, unregister or update concurrently.
//
// The callback channel is stored alongside the record but the registry does
// not manage its lifecycle beyond handing it out for delivery attempts.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	channels map[string]Channel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]domain.Session),
		channels: make(map[string]Channel),
	}
}

// Register creates a new online session with a unique id and attaches its
// callback channel. Ids are uuids, so they stay unique for the life of the
// hub even across re-registrations of the same display name.
func (r *Registry) Register(ch Channel, name, host string) domain.Session {
	now := time.Now().UTC()
	s := domain.Session{
		ID:             uuid.NewString(),
		Name:           name,
		Host:           host,
		ConnectedSince: now,
		Online:         true,
		Presence:       domain.PresenceAvailable,
		LastSeen:       now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	if ch != nil {
		r.channels[s.ID] = ch
	}
	r.mu.Unlock()
	return s
}

// Unregister marks the session offline, stamps its last-seen time and drops
// the callback channel. Unknown ids and repeated calls are no-ops.
func (r *Registry) Unregister(id string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	s.Online = false
	s.LastSeen = time.Now().UTC()
	r.sessions[id] = s
	delete(r.channels, id)
	return s, true
}

// Get returns a snapshot of one session.
func (r *Registry) Get(id string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// All returns a snapshot of every known session, offline ones included.
// The original service exposed this under an "online clients" name; both
// views are provided here and the caller picks.
func (r *Registry) All() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Online returns a snapshot of only the sessions currently connected.
func (r *Registry) Online() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Online {
			out = append(out, s)
		}
	}
	return out
}

// UpdatePresence sets the presence status and returns the updated record.
func (r *Registry) UpdatePresence(id string, status domain.PresenceStatus) (domain.Session, bool) {
	return r.Update(id, func(s *domain.Session) {
		s.Presence = status
	})
}

// Update applies fn to the session record under the registry lock and
// returns the updated snapshot. Callers merging a full profile are expected
// to have resolved the fields already.
func (r *Registry) Update(id string, fn func(*domain.Session)) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	fn(&s)
	r.sessions[id] = s
	return s, true
}

// Attach replaces the callback channel for an existing session.
func (r *Registry) Attach(id string, ch Channel) {
	r.mu.Lock()
	r.channels[id] = ch
	r.mu.Unlock()
}

// Channel returns the callback channel for a session, if it has one.
func (r *Registry) Channel(id string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[id]
	return ch, ok
}
