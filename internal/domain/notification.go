package domain

// NotificationKind discriminates the payload of a Notification.
type NotificationKind string

const (
	KindRegistered          NotificationKind = "registered"
	KindMessage             NotificationKind = "message"
	KindSessionConnected    NotificationKind = "session_connected"
	KindSessionDisconnected NotificationKind = "session_disconnected"
	KindStatusChanged       NotificationKind = "status"
	KindReactionChanged     NotificationKind = "reaction"
	KindPresenceChanged     NotificationKind = "presence"
	KindProfileChanged      NotificationKind = "profile"
)

// Notification is one push from the hub to a session's callback channel.
// Only the fields relevant to Kind are populated; a reaction change, for
// example, carries just the message id and recipients refetch the message.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Message   *Message         `json:"message,omitempty"`
	Session   *Session         `json:"session,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	MessageID string           `json:"message_id,omitempty"`
	Status    MessageStatus    `json:"status,omitempty"`
	Presence  PresenceStatus   `json:"presence,omitempty"`
	History   []Message        `json:"history,omitempty"`
}
