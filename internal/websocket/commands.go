package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/pubsub"
)

// Commands consumes client command topics from the bus and invokes the hub.
// The acting session is always the one the frame arrived on; clients cannot
// speak for each other.
type Commands struct {
	hub *hub.Hub
	log *slog.Logger
}

// NewCommands creates the command subscriber.
func NewCommands(h *hub.Hub, logger *slog.Logger) *Commands {
	return &Commands{hub: h, log: logger.With("component", "ws-commands")}
}

// Start subscribes to every command topic. Subscriptions live until the bus
// closes.
func (c *Commands) Start(ctx context.Context, sub pubsub.Subscriber) error {
	subscriptions := map[string]pubsub.Handler{
		TopicSendCommand:     c.handleSend,
		TopicStatusCommand:   c.handleStatus,
		TopicReactionCommand: c.handleReaction,
		TopicPresenceCommand: c.handlePresence,
		TopicProfileCommand:  c.handleProfile,
		TopicSessionClosed:   c.handleClosed,
	}
	for topic, handler := range subscriptions {
		if err := sub.Subscribe(ctx, topic, handler); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}

func (c *Commands) handleSend(ctx context.Context, msg pubsub.Message) error {
	var cmd SendCommand
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return fmt.Errorf("decode send command: %w", err)
	}

	sender, err := c.hub.Session(msg.SessionID)
	if err != nil {
		return fmt.Errorf("send from unknown session %s: %w", msg.SessionID, err)
	}

	msgType := domain.MessageType(cmd.Type)
	if !msgType.Valid() {
		msgType = domain.TypeText
	}
	m := domain.NewMessage(cmd.Content, sender.ID, sender.Name, msgType)
	m.RichText = cmd.RichText
	m.ReplyTo = cmd.ReplyTo
	if cmd.Encoded != "" {
		m.Attachment = &domain.Attachment{
			FileName:        cmd.FileName,
			Encoded:         cmd.Encoded,
			Size:            cmd.Size,
			ContentType:     cmd.ContentType,
			DurationSeconds: cmd.DurationSeconds,
			Thumbnail:       cmd.Thumbnail,
		}
	}

	_, err = c.hub.Send(ctx, m, sender.ID, cmd.RecipientID)
	return err
}

func (c *Commands) handleStatus(ctx context.Context, msg pubsub.Message) error {
	var cmd StatusCommand
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return fmt.Errorf("decode status command: %w", err)
	}
	status := domain.MessageStatus(cmd.Status)
	if !status.Valid() {
		return fmt.Errorf("unknown message status %q", cmd.Status)
	}
	c.hub.UpdateStatus(ctx, cmd.MessageID, status)
	return nil
}

func (c *Commands) handleReaction(ctx context.Context, msg pubsub.Message) error {
	var cmd ReactionCommand
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return fmt.Errorf("decode reaction command: %w", err)
	}
	if msg.Metadata["op"] == OpRemoveReaction {
		c.hub.RemoveReaction(ctx, cmd.MessageID, msg.SessionID)
		return nil
	}
	c.hub.AddReaction(ctx, cmd.MessageID, msg.SessionID, cmd.Type)
	return nil
}

func (c *Commands) handlePresence(ctx context.Context, msg pubsub.Message) error {
	var cmd PresenceCommand
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return fmt.Errorf("decode presence command: %w", err)
	}
	status := domain.PresenceStatus(cmd.Status)
	if !status.Valid() {
		return fmt.Errorf("unknown presence status %q", cmd.Status)
	}
	return c.hub.SetPresence(ctx, msg.SessionID, status)
}

func (c *Commands) handleProfile(ctx context.Context, msg pubsub.Message) error {
	var cmd ProfileCommand
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return fmt.Errorf("decode profile command: %w", err)
	}
	_, err := c.hub.UpdateProfile(ctx, msg.SessionID, domain.Session{
		Name:          cmd.Name,
		Email:         cmd.Email,
		StatusMessage: cmd.StatusMessage,
	})
	return err
}

func (c *Commands) handleClosed(ctx context.Context, msg pubsub.Message) error {
	c.hub.Unregister(ctx, msg.SessionID)
	return nil
}
