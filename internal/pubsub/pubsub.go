// Package pubsub is the in-process message bus between the transport layer
// and the hub. Inbound client command frames are published here and consumed
// by the hub's command subscriber, keeping the WebSocket plumbing ignorant
// of chat semantics.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "hub.commands.send").
	Topic string
	// SessionID identifies the session that initiated the message.
	SessionID string
	// Payload contains the raw message data (JSON).
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages
	// with the handler. The subscription runs until the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
