package websocket_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/chathub/internal/blobstore"
	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/history"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/pubsub"
	"github.com/nfrund/chathub/internal/session"
	"github.com/nfrund/chathub/internal/unread"
	"github.com/nfrund/chathub/internal/websocket"
)

type commandFixture struct {
	hub *hub.Hub
	bus *pubsub.WatermillBridge
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blobs, err := blobstore.New(afero.NewMemMapFs(), "/blobs", logger)
	require.NoError(t, err)

	h := hub.New(session.NewRegistry(), history.NewLog(100), unread.NewIndex(), blobs, logger, hub.Options{})
	t.Cleanup(h.Close)

	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { bus.Close() })

	commands := websocket.NewCommands(h, logger)
	require.NoError(t, commands.Start(context.Background(), bus))

	return &commandFixture{hub: h, bus: bus}
}

func (f *commandFixture) register(t *testing.T, name string) domain.Session {
	t.Helper()
	s, err := f.hub.Register(context.Background(), nil, name, "127.0.0.1")
	require.NoError(t, err)
	return s
}

// publish marshals the command and sends it on the given topic as the
// session.
func (f *commandFixture) publish(t *testing.T, topic, sessionID string, cmd any, metadata map[string]string) {
	t.Helper()
	payload, err := json.Marshal(cmd)
	require.NoError(t, err)
	require.NoError(t, f.bus.Publish(context.Background(), pubsub.Message{
		Topic:     topic,
		SessionID: sessionID,
		Payload:   payload,
		Metadata:  metadata,
	}))
}

func TestCommands_SendBroadcast(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	f.publish(t, websocket.TopicSendCommand, alice.ID, websocket.SendCommand{Content: "over the bus"}, nil)

	require.Eventually(t, func() bool {
		return len(f.hub.History()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	msg := f.hub.History()[0]
	assert.Equal(t, "over the bus", msg.Content)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, "alice", msg.SenderName, "sender name comes from the session, not the frame")
	assert.Equal(t, domain.StatusSent, msg.Status)
	assert.Equal(t, 1, f.hub.UnreadCounts(bob.ID)[alice.ID])
}

func TestCommands_StatusUpdate(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")
	sent, err := f.hub.Send(context.Background(), domain.Message{Content: "x"}, alice.ID, "")
	require.NoError(t, err)

	f.publish(t, websocket.TopicStatusCommand, alice.ID,
		websocket.StatusCommand{MessageID: sent.ID, Status: "READ"}, nil)

	require.Eventually(t, func() bool {
		m, err := f.hub.Message(sent.ID)
		return err == nil && m.Status == domain.StatusRead
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCommands_ReactionAddAndRemove(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	sent, err := f.hub.Send(context.Background(), domain.Message{Content: "x"}, alice.ID, "")
	require.NoError(t, err)

	// The reacting user is the session the frame arrived on.
	f.publish(t, websocket.TopicReactionCommand, bob.ID,
		websocket.ReactionCommand{MessageID: sent.ID, Type: "👍"},
		map[string]string{"op": websocket.OpAddReaction})

	require.Eventually(t, func() bool {
		m, err := f.hub.Message(sent.ID)
		return err == nil && len(m.Reactions) == 1 && m.Reactions[0].UserID == bob.ID
	}, 2*time.Second, 5*time.Millisecond)

	f.publish(t, websocket.TopicReactionCommand, bob.ID,
		websocket.ReactionCommand{MessageID: sent.ID},
		map[string]string{"op": websocket.OpRemoveReaction})

	require.Eventually(t, func() bool {
		m, err := f.hub.Message(sent.ID)
		return err == nil && len(m.Reactions) == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCommands_Presence(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")

	f.publish(t, websocket.TopicPresenceCommand, alice.ID, websocket.PresenceCommand{Status: "AWAY"}, nil)

	require.Eventually(t, func() bool {
		s, err := f.hub.Session(alice.ID)
		return err == nil && s.Presence == domain.PresenceAway
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCommands_Profile(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")

	f.publish(t, websocket.TopicProfileCommand, alice.ID,
		websocket.ProfileCommand{Name: "alice2", StatusMessage: "busy day"}, nil)

	require.Eventually(t, func() bool {
		s, err := f.hub.Session(alice.ID)
		return err == nil && s.Name == "alice2" && s.StatusMessage == "busy day"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestCommands_SessionClosedUnregisters(t *testing.T) {
	f := newCommandFixture(t)
	alice := f.register(t, "alice")

	f.publish(t, websocket.TopicSessionClosed, alice.ID, struct{}{}, nil)

	require.Eventually(t, func() bool {
		s, err := f.hub.Session(alice.ID)
		return err == nil && !s.Online
	}, 2*time.Second, 5*time.Millisecond)
}
