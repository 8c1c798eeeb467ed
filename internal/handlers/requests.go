package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// AttachmentRequest is the inline payload of a FILE, VOICE or VIDEO message.
type AttachmentRequest struct {
	FileName        string `json:"file_name"`
	Content         string `json:"content" validate:"required,base64"`
	ContentType     string `json:"content_type"`
	Size            int64  `json:"size"`
	DurationSeconds int    `json:"duration_seconds"`
	Thumbnail       string `json:"thumbnail" validate:"omitempty,base64"`
}

// SendMessageRequest is the DTO for posting a message. An absent
// recipient_id broadcasts to every known session.
type SendMessageRequest struct {
	SenderID    string             `json:"sender_id" validate:"required"`
	SenderName  string             `json:"sender_name"`
	Content     string             `json:"content"`
	Type        string             `json:"type" validate:"omitempty,oneof=TEXT SYSTEM NOTIFICATION FILE VOICE VIDEO"`
	RichText    bool               `json:"rich_text"`
	RecipientID string             `json:"recipient_id"`
	ReplyTo     string             `json:"reply_to"`
	Attachment  *AttachmentRequest `json:"attachment" validate:"omitempty"`
}

// UpdateStatusRequest advances a message's delivery status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SENDING SENT DELIVERED READ"`
}

// AddReactionRequest adds a user's reaction to a message.
type AddReactionRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Type   string `json:"type" validate:"required"`
}

// PresenceRequest changes a session's presence status.
type PresenceRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE AWAY BUSY INVISIBLE"`
}

// ProfileRequest replaces a session's profile fields.
type ProfileRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	StatusMessage string `json:"status_message"`
}

// AvatarRequest uploads a session's avatar image.
type AvatarRequest struct {
	Content     string `json:"content" validate:"required,base64"`
	ContentType string `json:"content_type" validate:"required"`
}

// StoreFileRequest uploads a standalone blob.
type StoreFileRequest struct {
	Name        string `json:"name" validate:"required"`
	Content     string `json:"content" validate:"required,base64"`
	ContentType string `json:"content_type" validate:"required"`
}
