package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// Metadata keys used to carry our Message fields through watermill.
	metaKeySessionID = "session_id"
	metaKeyTopic     = "topic"
)

// WatermillBridge implements Publisher and Subscriber over watermill's
// in-memory GoChannel. The hub is a single process, so no broker is needed;
// the bridge still gives the transport and the command layer an async,
// decoupled seam.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	logger watermill.LoggerAdapter
}

// NewWatermillBridge initializes the in-memory bus.
func NewWatermillBridge() *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return &WatermillBridge{
		pub:    goChannel,
		sub:    goChannel,
		logger: logger,
	}
}

func mapToWatermillMessage(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	wmMsg.Metadata.Set(metaKeySessionID, msg.SessionID)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	return wmMsg
}

func mapToPubSubMessage(wmMsg *message.Message) Message {
	sessionID := wmMsg.Metadata.Get(metaKeySessionID)
	topic := wmMsg.Metadata.Get(metaKeyTopic)

	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if k != metaKeySessionID && k != metaKeyTopic {
			metadata[k] = v
		}
	}

	return Message{
		Topic:     topic,
		SessionID: sessionID,
		Payload:   wmMsg.Payload,
		Metadata:  metadata,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return wb.pub.Publish(msg.Topic, mapToWatermillMessage(msg))
}

// Subscribe implements the Subscriber interface. Message processing runs in
// a background goroutine so Subscribe returns once the subscription is live.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := mapToPubSubMessage(wmMsg)
			if err := handler(ctx, msg); err != nil {
				slog.Error("Failed to handle bus message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
			}
			// Nacking on the gochannel bus would redeliver the same bad
			// message forever; ack either way and rely on the log line.
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close shuts the bus down, ending every subscription loop.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
