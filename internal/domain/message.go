package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType describes what a message carries.
type MessageType string

const (
	TypeText         MessageType = "TEXT"
	TypeSystem       MessageType = "SYSTEM"
	TypeNotification MessageType = "NOTIFICATION"
	TypeFile         MessageType = "FILE"
	TypeVoice        MessageType = "VOICE"
	TypeVideo        MessageType = "VIDEO"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case TypeText, TypeSystem, TypeNotification, TypeFile, TypeVoice, TypeVideo:
		return true
	}
	return false
}

// MessageStatus tracks a message through its delivery lifecycle.
// SENDING only ever exists client-side; the hub stamps SENT on ingress and
// DELIVERED/READ are advanced by explicit status updates from sessions.
type MessageStatus string

const (
	StatusSending   MessageStatus = "SENDING"
	StatusSent      MessageStatus = "SENT"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
)

// Valid reports whether s is one of the known status values.
func (s MessageStatus) Valid() bool {
	switch s {
	case StatusSending, StatusSent, StatusDelivered, StatusRead:
		return true
	}
	return false
}

// Reaction is one user's reaction to a message.
type Reaction struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

// Attachment is the payload carried by FILE, VOICE and VIDEO messages.
// Encoded holds the inline base64 content on the way in; once the hub has
// persisted it to the blob store, Encoded is cleared and BlobID set, so the
// content is addressed by id instead of being re-transmitted with every
// history snapshot.
type Attachment struct {
	FileName        string `json:"file_name,omitempty"`
	Encoded         string `json:"encoded,omitempty"`
	Size            int64  `json:"size"`
	ContentType     string `json:"content_type"`
	BlobID          string `json:"blob_id,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	// Thumbnail is the inline preview for video messages; like Encoded it is
	// swapped for ThumbnailBlobID when stored.
	Thumbnail       string `json:"thumbnail,omitempty"`
	ThumbnailBlobID string `json:"thumbnail_blob_id,omitempty"`
}

// Stored reports whether the attachment content lives in the blob store.
func (a Attachment) Stored() bool {
	return a.BlobID != ""
}

// FormattedDuration renders the voice/video length as m:ss.
func (a Attachment) FormattedDuration() string {
	return fmt.Sprintf("%d:%02d", a.DurationSeconds/60, a.DurationSeconds%60)
}

// Message is an immutable chat event. The hub never mutates a message in
// place: status and reaction changes produce a new snapshot that replaces
// the stored one and gets republished, so sessions can safely hold on to
// whatever copy they last received.
type Message struct {
	ID         string        `json:"id"`
	SenderID   string        `json:"sender_id"`
	SenderName string        `json:"sender_name"`
	SentAt     time.Time     `json:"sent_at"`
	Type       MessageType   `json:"type"`
	Content    string        `json:"content"`
	RichText   bool          `json:"rich_text,omitempty"`
	Status     MessageStatus `json:"status"`
	ReplyTo    string        `json:"reply_to,omitempty"`
	Attachment *Attachment   `json:"attachment,omitempty"`
	Reactions  []Reaction    `json:"reactions,omitempty"`
}

// NewMessage creates a message of the given type with a fresh id.
func NewMessage(content, senderID, senderName string, t MessageType) Message {
	return Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		SenderName: senderName,
		SentAt:     time.Now().UTC(),
		Type:       t,
		Content:    content,
		Status:     StatusSending,
	}
}

// NewSystemMessage creates a server-originated informational message.
func NewSystemMessage(content string) Message {
	return NewMessage(content, "SYSTEM", "System", TypeSystem)
}

// NewNotification creates a server-originated notification message.
func NewNotification(content string) Message {
	return NewMessage(content, "SYSTEM", "System", TypeNotification)
}

// NewFileMessage creates a FILE message carrying the given attachment.
func NewFileMessage(content, senderID, senderName string, att Attachment) Message {
	m := NewMessage(content, senderID, senderName, TypeFile)
	m.Attachment = &att
	return m
}

// NewVoiceMessage creates a VOICE message from inline base64 audio.
func NewVoiceMessage(senderID, senderName, encoded string, durationSeconds int) Message {
	m := NewMessage("Voice message", senderID, senderName, TypeVoice)
	m.Attachment = &Attachment{
		Encoded:         encoded,
		ContentType:     "audio/mp3",
		DurationSeconds: durationSeconds,
	}
	return m
}

// NewVideoMessage creates a VIDEO message from inline base64 video and thumbnail.
func NewVideoMessage(senderID, senderName, encoded, thumbnail string, durationSeconds int) Message {
	m := NewMessage("Video message", senderID, senderName, TypeVideo)
	m.Attachment = &Attachment{
		Encoded:         encoded,
		Thumbnail:       thumbnail,
		ContentType:     "video/mp4",
		DurationSeconds: durationSeconds,
	}
	return m
}

// NewReply creates a TEXT message replying to another message.
func NewReply(content, senderID, senderName, replyTo string) Message {
	m := NewMessage(content, senderID, senderName, TypeText)
	m.ReplyTo = replyTo
	return m
}

// Clone returns a deep copy of the message. Reaction slices are copied so
// editing the clone never aliases the original snapshot.
func (m Message) Clone() Message {
	out := m
	if m.Attachment != nil {
		att := *m.Attachment
		out.Attachment = &att
	}
	if len(m.Reactions) > 0 {
		out.Reactions = make([]Reaction, len(m.Reactions))
		copy(out.Reactions, m.Reactions)
	}
	return out
}

// AddReaction appends a reaction. A user's earlier reactions are kept, so a
// user can hold several reactions on the same message at once.
func (m *Message) AddReaction(userID, reactionType string) {
	m.Reactions = append(m.Reactions, Reaction{UserID: userID, Type: reactionType})
}

// RemoveReaction deletes every reaction the user has on the message.
func (m *Message) RemoveReaction(userID string) {
	kept := m.Reactions[:0]
	for _, r := range m.Reactions {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.Reactions = kept
}
