// Package api is the minimal REST client hubctl uses to talk to a running
// hub.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the hub's REST surface.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the hub at baseURL (e.g. http://localhost:8080).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Session mirrors the server's session response.
type Session struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Host           string    `json:"host"`
	ConnectedSince time.Time `json:"connected_since"`
	Online         bool      `json:"online"`
	Presence       string    `json:"presence"`
	StatusMessage  string    `json:"status_message"`
	Email          string    `json:"email,omitempty"`
	DisplayStatus  string    `json:"display_status"`
}

// Message mirrors the server's message payload.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SentAt     time.Time `json:"sent_at"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
}

// Unread mirrors the server's unread-counts response.
type Unread struct {
	SessionID string         `json:"session_id"`
	Counts    map[string]int `json:"counts"`
}

// FileMeta mirrors the server's file metadata response.
type FileMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Content     string `json:"content,omitempty"`
}

// Sessions fetches the session roster, optionally only online ones.
func (c *Client) Sessions(onlineOnly bool) ([]Session, error) {
	url := c.baseURL + "/api/sessions"
	if onlineOnly {
		url += "?online=true"
	}
	var out []Session
	return out, c.get(url, &out)
}

// History fetches the message log, optionally trimmed to the last n entries.
func (c *Client) History(limit int) ([]Message, error) {
	url := c.baseURL + "/api/messages"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}
	var out []Message
	return out, c.get(url, &out)
}

// Unread fetches a session's unread counts grouped by sender.
func (c *Client) Unread(sessionID string) (Unread, error) {
	var out Unread
	return out, c.get(c.baseURL+"/api/sessions/"+sessionID+"/unread", &out)
}

// Send posts a message. An empty recipientID broadcasts.
func (c *Client) Send(senderID, recipientID, content string) (Message, error) {
	body := map[string]string{
		"sender_id": senderID,
		"content":   content,
	}
	if recipientID != "" {
		body["recipient_id"] = recipientID
	}
	var out Message
	return out, c.post(c.baseURL+"/api/messages", body, &out)
}

// StoreFile uploads a base64 payload and returns its blob id.
func (c *Client) StoreFile(name, encoded, contentType string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.post(c.baseURL+"/api/files", map[string]string{
		"name":         name,
		"content":      encoded,
		"content_type": contentType,
	}, &out)
	return out.ID, err
}

// FileMetadata fetches a blob's metadata.
func (c *Client) FileMetadata(id string) (FileMeta, error) {
	var out FileMeta
	return out, c.get(c.baseURL+"/api/files/"+id+"/meta", &out)
}

// FileContent fetches a blob's metadata together with its base64 payload.
func (c *Client) FileContent(id string) (FileMeta, error) {
	var out FileMeta
	return out, c.get(c.baseURL+"/api/files/"+id, &out)
}

func (c *Client) get(url string, out any) error {
	resp, err := c.http.Get(url)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) post(url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
