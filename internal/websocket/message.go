package websocket

import "encoding/json"

// Frame is the JSON envelope used in both directions on a session's socket.
//
// Server to client, Op is the notification kind and Payload is the full
// domain.Notification. Client to server, Op names a command and Payload is
// that command's body.
type Frame struct {
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Command ops accepted from clients.
const (
	OpSendMessage    = "send_message"
	OpUpdateStatus   = "update_status"
	OpAddReaction    = "add_reaction"
	OpRemoveReaction = "remove_reaction"
	OpUpdatePresence = "update_presence"
	OpUpdateProfile  = "update_profile"
)

// SendCommand asks the hub to route a message. An empty recipient_id means
// broadcast.
type SendCommand struct {
	Content         string `json:"content"`
	Type            string `json:"type,omitempty"`
	RichText        bool   `json:"rich_text,omitempty"`
	RecipientID     string `json:"recipient_id,omitempty"`
	ReplyTo         string `json:"reply_to,omitempty"`
	FileName        string `json:"file_name,omitempty"`
	Encoded         string `json:"encoded,omitempty"`
	ContentType     string `json:"content_type,omitempty"`
	Size            int64  `json:"size,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty"`
}

// StatusCommand advances a message's delivery status.
type StatusCommand struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ReactionCommand adds or removes a reaction on a message.
type ReactionCommand struct {
	MessageID string `json:"message_id"`
	Type      string `json:"type,omitempty"`
}

// PresenceCommand changes the sending session's presence.
type PresenceCommand struct {
	Status string `json:"status"`
}

// ProfileCommand replaces the sending session's profile fields.
type ProfileCommand struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}
