package handlers

import (
	"github.com/samber/lo"

	"github.com/nfrund/chathub/internal/domain"
)

// SessionResponse is the DTO for a single session. It adds the rendered
// display status on top of the raw record.
type SessionResponse struct {
	domain.Session
	DisplayStatus string `json:"display_status"`
}

// NewSessionResponse creates a SessionResponse from a domain.Session.
func NewSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{Session: s, DisplayStatus: s.DisplayStatus()}
}

// NewSessionResponses maps a session snapshot to its DTO form.
func NewSessionResponses(sessions []domain.Session) []SessionResponse {
	return lo.Map(sessions, func(s domain.Session, _ int) SessionResponse {
		return NewSessionResponse(s)
	})
}

// BlobResponse carries the id of a newly stored blob.
type BlobResponse struct {
	ID string `json:"id"`
}

// FileMetadataResponse is a blob's declared metadata.
type FileMetadataResponse struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// FileContentResponse is a blob's metadata plus its base64 payload.
type FileContentResponse struct {
	FileMetadataResponse
	Content string `json:"content"`
}

// UnreadResponse maps sender ids to unread message counts for one session.
type UnreadResponse struct {
	SessionID string         `json:"session_id"`
	Counts    map[string]int `json:"counts"`
}

// AvatarResponse carries the blob id of an uploaded avatar.
type AvatarResponse struct {
	BlobID string `json:"blob_id"`
}
