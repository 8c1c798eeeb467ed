package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/session"
)

// stubChannel is a no-op callback channel for registry tests.
type stubChannel struct{}

func (stubChannel) Deliver(context.Context, domain.Notification) error { return nil }

func TestRegistry_RegisterAssignsUniqueIDs(t *testing.T) {
	reg := session.NewRegistry()

	a := reg.Register(stubChannel{}, "alice", "10.0.0.1")
	b := reg.Register(stubChannel{}, "bob", "10.0.0.2")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	assert.True(t, a.Online)
	assert.Equal(t, domain.PresenceAvailable, a.Presence)
	assert.False(t, a.ConnectedSince.IsZero())
}

func TestRegistry_UnregisterKeepsRecord(t *testing.T) {
	reg := session.NewRegistry()
	s := reg.Register(stubChannel{}, "alice", "10.0.0.1")

	gone, ok := reg.Unregister(s.ID)
	require.True(t, ok)
	assert.False(t, gone.Online)
	assert.False(t, gone.LastSeen.IsZero())

	// The record survives for presence history.
	kept, ok := reg.Get(s.ID)
	require.True(t, ok)
	assert.False(t, kept.Online)

	// Unregistering twice is harmless.
	_, ok = reg.Unregister(s.ID)
	assert.True(t, ok)

	_, ok = reg.Unregister("missing")
	assert.False(t, ok)
}

func TestRegistry_AllAndOnline(t *testing.T) {
	reg := session.NewRegistry()
	a := reg.Register(stubChannel{}, "alice", "h1")
	reg.Register(stubChannel{}, "bob", "h2")
	reg.Unregister(a.ID)

	assert.Len(t, reg.All(), 2, "All includes offline sessions")

	online := reg.Online()
	require.Len(t, online, 1)
	assert.Equal(t, "bob", online[0].Name)
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	reg := session.NewRegistry()
	s := reg.Register(stubChannel{}, "alice", "h1")

	all := reg.All()
	require.Len(t, all, 1)
	all[0].Name = "mallory"

	got, _ := reg.Get(s.ID)
	assert.Equal(t, "alice", got.Name)
}

func TestRegistry_UpdatePresence(t *testing.T) {
	reg := session.NewRegistry()
	s := reg.Register(stubChannel{}, "alice", "h1")

	updated, ok := reg.UpdatePresence(s.ID, domain.PresenceBusy)
	require.True(t, ok)
	assert.Equal(t, domain.PresenceBusy, updated.Presence)

	_, ok = reg.UpdatePresence("missing", domain.PresenceAway)
	assert.False(t, ok)
}

func TestRegistry_Update(t *testing.T) {
	reg := session.NewRegistry()
	s := reg.Register(stubChannel{}, "alice", "h1")

	updated, ok := reg.Update(s.ID, func(sess *domain.Session) {
		sess.Email = "alice@example.com"
		sess.StatusMessage = "out to lunch"
	})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", updated.Email)

	stored, _ := reg.Get(s.ID)
	assert.Equal(t, "out to lunch", stored.StatusMessage)
}

func TestRegistry_Channel(t *testing.T) {
	reg := session.NewRegistry()
	ch := stubChannel{}
	s := reg.Register(ch, "alice", "h1")

	got, ok := reg.Channel(s.ID)
	require.True(t, ok)
	assert.NotNil(t, got)

	reg.Unregister(s.ID)
	_, ok = reg.Channel(s.ID)
	assert.False(t, ok, "unregister detaches the channel")
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	reg := session.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(stubChannel{}, "user", "host")
		}()
	}
	wg.Wait()

	assert.Len(t, reg.All(), 50)
}
