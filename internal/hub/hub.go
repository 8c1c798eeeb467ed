// Package hub is the orchestration core of the chat service. It composes
// the session registry, the bounded message history, the unread index and
// the blob store, and fans notifications out to each affected session's
// callback channel.
package hub

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/chathub/internal/blobstore"
	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/history"
	"github.com/nfrund/chathub/internal/session"
	"github.com/nfrund/chathub/internal/unread"
)

const welcomeText = "Welcome to the chat server!"

// Options tune the hub's delivery behavior.
type Options struct {
	// DeliveryTimeout bounds each individual push to a callback channel so a
	// dead peer cannot block a fanout worker indefinitely.
	DeliveryTimeout time.Duration
	// FanoutWorkers is the number of concurrent delivery goroutines.
	FanoutWorkers int
	// FanoutQueue is the buffered backlog of pending deliveries.
	FanoutQueue int
}

func (o *Options) defaults() {
	if o.DeliveryTimeout <= 0 {
		o.DeliveryTimeout = 5 * time.Second
	}
	if o.FanoutWorkers <= 0 {
		o.FanoutWorkers = 8
	}
	if o.FanoutQueue <= 0 {
		o.FanoutQueue = 256
	}
}

// Hub routes messages, propagates status, presence and profile changes, and
// owns all shared chat state for the life of the process. Every method is
// safe for concurrent use by any number of sessions.
type Hub struct {
	registry *session.Registry
	history  *history.Log
	unread   *unread.Index
	blobs    *blobstore.Store
	pool     *fanout
	timeout  time.Duration
	log      *slog.Logger
}

// New creates a hub around the given collaborators and starts its fanout
// workers.
func New(reg *session.Registry, hist *history.Log, idx *unread.Index, blobs *blobstore.Store, logger *slog.Logger, opts Options) *Hub {
	opts.defaults()
	return &Hub{
		registry: reg,
		history:  hist,
		unread:   idx,
		blobs:    blobs,
		pool:     newFanout(opts.FanoutWorkers, opts.FanoutQueue),
		timeout:  opts.DeliveryTimeout,
		log:      logger.With("component", "hub"),
	}
}

// Close stops the fanout workers after draining pending deliveries.
func (h *Hub) Close() {
	h.pool.close()
}

// deliver attempts one asynchronous push to a session. Sessions without an
// attached channel are skipped quietly; a failed push is logged and dropped,
// never retried, and never surfaced to whoever triggered the fanout.
func (h *Hub) deliver(sessionID string, n domain.Notification) {
	ch, ok := h.registry.Channel(sessionID)
	if !ok {
		return
	}
	h.pool.submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		if err := ch.Deliver(ctx, n); err != nil {
			h.log.Warn("Failed to deliver notification",
				"session_id", sessionID, "kind", n.Kind, "error", err)
		}
	})
}

// Register creates a session for the given callback channel and returns it.
// The new session synchronously receives its id and the current history
// snapshot, then asynchronously a welcome message and one SessionConnected
// notification per existing session; every other session is told about the
// newcomer.
func (h *Hub) Register(ctx context.Context, ch session.Channel, name, host string) (domain.Session, error) {
	s := h.registry.Register(ch, name, host)
	h.unread.Track(s.ID)

	if ch != nil {
		reg := domain.Notification{Kind: domain.KindRegistered, Session: &s, History: h.history.All()}
		if err := ch.Deliver(ctx, reg); err != nil {
			h.log.Warn("Failed to deliver registration snapshot", "session_id", s.ID, "error", err)
		}
	}

	for _, other := range h.registry.All() {
		if other.ID == s.ID {
			continue
		}
		o := other
		h.deliver(o.ID, domain.Notification{Kind: domain.KindSessionConnected, Session: &s})
		h.deliver(s.ID, domain.Notification{Kind: domain.KindSessionConnected, Session: &o})
	}

	welcome := domain.NewSystemMessage(welcomeText)
	welcome.Status = domain.StatusSent
	h.deliver(s.ID, domain.Notification{Kind: domain.KindMessage, Message: &welcome})

	h.log.Info("Session registered", "session_id", s.ID, "name", s.Name, "host", s.Host)
	return s, nil
}

// Unregister marks the session offline and tells every other session it is
// gone. Unknown ids and repeated calls are no-ops.
func (h *Hub) Unregister(ctx context.Context, id string) {
	s, ok := h.registry.Unregister(id)
	if !ok {
		return
	}
	for _, other := range h.registry.All() {
		if other.ID == id {
			continue
		}
		h.deliver(other.ID, domain.Notification{Kind: domain.KindSessionDisconnected, SessionID: id})
	}
	h.log.Info("Session unregistered", "session_id", id, "name", s.Name)
}

// Send finalizes the message (inline attachments persisted, status SENT),
// appends it to history and routes it. An empty recipientID broadcasts to
// every known session including the sender; the sender's own copy is the
// echo clients rely on to render their message, and is never marked unread.
// The returned snapshot is the finalized message as appended.
func (h *Hub) Send(ctx context.Context, msg domain.Message, senderID, recipientID string) (domain.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	msg.SenderID = senderID
	h.persistAttachment(&msg)
	msg.Status = domain.StatusSent

	if evicted := h.history.Append(msg); evicted != "" {
		h.unread.Forget(evicted)
		h.log.Debug("Evicted oldest message from history", "message_id", evicted)
	}

	if recipientID == "" {
		for _, s := range h.registry.All() {
			if s.ID != senderID {
				h.unread.MarkUnread(s.ID, msg.ID)
			}
			h.deliver(s.ID, domain.Notification{Kind: domain.KindMessage, Message: &msg})
		}
		return msg, nil
	}

	if _, ok := h.registry.Get(recipientID); !ok {
		h.log.Warn("Dropping direct message to unknown recipient",
			"message_id", msg.ID, "recipient_id", recipientID)
		return msg, nil
	}
	h.unread.MarkUnread(recipientID, msg.ID)
	h.deliver(recipientID, domain.Notification{Kind: domain.KindMessage, Message: &msg})
	if senderID != recipientID {
		h.deliver(senderID, domain.Notification{Kind: domain.KindMessage, Message: &msg})
	}
	return msg, nil
}

// persistAttachment moves inline base64 content (and a video thumbnail, if
// present) into the blob store, replacing the payload with blob references.
// A storage failure is logged and the message continues with its inline
// content intact rather than aborting the send.
func (h *Hub) persistAttachment(msg *domain.Message) {
	att := msg.Attachment
	if att == nil || att.Stored() || att.Encoded == "" {
		return
	}

	name := att.FileName
	if name == "" {
		name = string(msg.Type)
	}
	id, err := h.blobs.Put(att.Encoded, name, att.ContentType)
	if err != nil {
		h.log.Error("Failed to store attachment", "message_id", msg.ID, "error", err)
		return
	}
	att.BlobID = id
	att.Encoded = ""

	if att.Thumbnail != "" {
		thumbID, err := h.blobs.Put(att.Thumbnail, name+".thumb", "image/jpeg")
		if err != nil {
			h.log.Error("Failed to store thumbnail", "message_id", msg.ID, "error", err)
		} else {
			att.ThumbnailBlobID = thumbID
		}
		att.Thumbnail = ""
	}
}

// UpdateStatus sets a message's status. READ scrubs the id from every
// session's unread set. Exactly one StatusChanged notification goes to the
// message's original sender, whoever triggered the update. Unknown message
// ids are a silent no-op.
func (h *Hub) UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus) {
	updated, ok := h.history.Update(messageID, func(m *domain.Message) {
		m.Status = status
	})
	if !ok {
		return
	}
	if status == domain.StatusRead {
		h.unread.Forget(messageID)
	}
	h.deliver(updated.SenderID, domain.Notification{
		Kind:      domain.KindStatusChanged,
		MessageID: messageID,
		Status:    status,
	})
}

// AddReaction appends the user's reaction to the message and broadcasts a
// reaction-changed notification carrying only the message id.
func (h *Hub) AddReaction(ctx context.Context, messageID, userID, reactionType string) {
	_, ok := h.history.Update(messageID, func(m *domain.Message) {
		m.AddReaction(userID, reactionType)
	})
	if !ok {
		return
	}
	h.broadcastReaction(messageID)
}

// RemoveReaction deletes the user's reactions from the message and
// broadcasts a reaction-changed notification.
func (h *Hub) RemoveReaction(ctx context.Context, messageID, userID string) {
	_, ok := h.history.Update(messageID, func(m *domain.Message) {
		m.RemoveReaction(userID)
	})
	if !ok {
		return
	}
	h.broadcastReaction(messageID)
}

func (h *Hub) broadcastReaction(messageID string) {
	for _, s := range h.registry.All() {
		h.deliver(s.ID, domain.Notification{Kind: domain.KindReactionChanged, MessageID: messageID})
	}
}

// SetPresence updates the session's presence and notifies every other
// session. The subject is excluded: it already knows its own presence.
func (h *Hub) SetPresence(ctx context.Context, id string, status domain.PresenceStatus) error {
	if _, ok := h.registry.UpdatePresence(id, status); !ok {
		return domain.ErrSessionNotFound
	}
	for _, s := range h.registry.All() {
		if s.ID == id {
			continue
		}
		h.deliver(s.ID, domain.Notification{
			Kind:      domain.KindPresenceChanged,
			SessionID: id,
			Presence:  status,
		})
	}
	return nil
}

// UpdateProfile replaces the session's profile fields and broadcasts the
// updated record to every session, the subject included. Identity and
// connection state (id, host, online flag, timestamps) are not touched.
func (h *Hub) UpdateProfile(ctx context.Context, id string, profile domain.Session) (domain.Session, error) {
	updated, ok := h.registry.Update(id, func(s *domain.Session) {
		s.Name = profile.Name
		s.Email = profile.Email
		s.StatusMessage = profile.StatusMessage
		if profile.Presence.Valid() {
			s.Presence = profile.Presence
		}
		if profile.AvatarBlobID != "" {
			s.AvatarBlobID = profile.AvatarBlobID
		}
	})
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	h.broadcastProfile(updated)
	return updated, nil
}

// SetStatusMessage sets the session's free-text status line and broadcasts
// the profile to every session.
func (h *Hub) SetStatusMessage(ctx context.Context, id, statusMessage string) error {
	updated, ok := h.registry.Update(id, func(s *domain.Session) {
		s.StatusMessage = statusMessage
	})
	if !ok {
		return domain.ErrSessionNotFound
	}
	h.broadcastProfile(updated)
	return nil
}

// SetAvatar stores the base64 image as a blob, points the session's profile
// at it and broadcasts the profile to every session.
func (h *Hub) SetAvatar(ctx context.Context, id, encoded, contentType string) (string, error) {
	if _, ok := h.registry.Get(id); !ok {
		return "", domain.ErrSessionNotFound
	}
	blobID, err := h.blobs.Put(encoded, "avatar-"+id, contentType)
	if err != nil {
		return "", err
	}
	updated, ok := h.registry.Update(id, func(s *domain.Session) {
		s.AvatarBlobID = blobID
	})
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	h.broadcastProfile(updated)
	return blobID, nil
}

func (h *Hub) broadcastProfile(s domain.Session) {
	for _, other := range h.registry.All() {
		h.deliver(other.ID, domain.Notification{Kind: domain.KindProfileChanged, Session: &s})
	}
}

// History returns the full current history snapshot. Every session sees the
// same log; there is no per-session filtering.
func (h *Hub) History() []domain.Message {
	return h.history.All()
}

// Message returns one message by id.
func (h *Hub) Message(id string) (domain.Message, error) {
	m, ok := h.history.Get(id)
	if !ok {
		return domain.Message{}, domain.ErrMessageNotFound
	}
	return m, nil
}

// UnreadCounts returns the session's unread messages grouped by original
// sender id.
func (h *Hub) UnreadCounts(sessionID string) map[string]int {
	return h.unread.CountsBySender(sessionID, func(messageID string) (string, bool) {
		m, ok := h.history.Get(messageID)
		return m.SenderID, ok
	})
}

// Sessions returns every session the hub has ever seen, offline included.
// The original wire surface called this "online clients"; OnlineSessions is
// the honest filter for callers that want only connected peers.
func (h *Hub) Sessions() []domain.Session {
	return h.registry.All()
}

// OnlineSessions returns only the currently connected sessions.
func (h *Hub) OnlineSessions() []domain.Session {
	return h.registry.Online()
}

// Session returns one session by id.
func (h *Hub) Session(id string) (domain.Session, error) {
	s, ok := h.registry.Get(id)
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

// StoreFile persists a base64 payload and returns its blob id.
func (h *Hub) StoreFile(name, encoded, contentType string) (string, error) {
	return h.blobs.Put(encoded, name, contentType)
}

// FileContent returns a blob's raw payload together with its metadata.
func (h *Hub) FileContent(id string) ([]byte, blobstore.Metadata, error) {
	data, err := h.blobs.Get(id)
	if err != nil {
		return nil, blobstore.Metadata{}, err
	}
	meta, err := h.blobs.Metadata(id)
	if err != nil {
		return nil, blobstore.Metadata{}, err
	}
	return data, meta, nil
}

// FileMetadata returns a blob's declared name, content type and size.
func (h *Hub) FileMetadata(id string) (blobstore.Metadata, error) {
	return h.blobs.Metadata(id)
}

// IsNotFound reports whether err is one of the hub's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrMessageNotFound) ||
		errors.Is(err, domain.ErrBlobNotFound)
}
