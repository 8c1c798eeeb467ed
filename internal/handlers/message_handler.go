package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/middleware"
)

// MessageHandler serves message submission, history, delivery status and
// reactions.
type MessageHandler struct {
	hub *hub.Hub
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(h *hub.Hub) *MessageHandler {
	return &MessageHandler{hub: h}
}

// Send accepts a message and routes it to its recipients. An empty
// recipient id means broadcast.
func (h *MessageHandler) Send(c echo.Context) error {
	ctx := c.Request().Context()
	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg := domain.Message{
		SenderID:   req.SenderID,
		SenderName: req.SenderName,
		Content:    req.Content,
		Type:       domain.MessageType(req.Type),
		RichText:   req.RichText,
		ReplyTo:    req.ReplyTo,
	}
	if msg.Type == "" {
		msg.Type = domain.TypeText
	}
	if req.Attachment != nil {
		msg.Attachment = &domain.Attachment{
			FileName:        req.Attachment.FileName,
			Encoded:         req.Attachment.Content,
			ContentType:     req.Attachment.ContentType,
			Size:            req.Attachment.Size,
			DurationSeconds: req.Attachment.DurationSeconds,
			Thumbnail:       req.Attachment.Thumbnail,
		}
	}

	sent, err := h.hub.Send(ctx, msg, req.SenderID, req.RecipientID)
	if err != nil {
		if hub.IsNotFound(err) {
			return notFound(err)
		}
		middleware.FromContext(ctx).Error("Failed to send message", "sender_id", req.SenderID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send message")
	}
	return c.JSON(http.StatusCreated, sent)
}

// History returns the retained message log, oldest first. ?limit=n trims
// to the most recent n entries.
func (h *MessageHandler) History(c echo.Context) error {
	msgs := h.hub.History()
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		if limit < len(msgs) {
			msgs = msgs[len(msgs)-limit:]
		}
	}
	return c.JSON(http.StatusOK, msgs)
}

// Get returns a single message snapshot by id.
func (h *MessageHandler) Get(c echo.Context) error {
	msg, err := h.hub.Message(c.Param("id"))
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, msg)
}

// UpdateStatus advances a message's delivery status on behalf of the
// reading session and notifies the original sender.
func (h *MessageHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	h.hub.UpdateStatus(c.Request().Context(), c.Param("id"), domain.MessageStatus(req.Status))
	return c.NoContent(http.StatusNoContent)
}

// AddReaction records a reaction on a message and broadcasts the change.
func (h *MessageHandler) AddReaction(c echo.Context) error {
	var req AddReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	if _, err := h.hub.Message(id); err != nil {
		return notFound(err)
	}
	h.hub.AddReaction(c.Request().Context(), id, req.UserID, req.Type)
	return c.NoContent(http.StatusNoContent)
}

// RemoveReaction removes all of a user's reactions from a message.
func (h *MessageHandler) RemoveReaction(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	id := c.Param("id")
	if _, err := h.hub.Message(id); err != nil {
		return notFound(err)
	}
	h.hub.RemoveReaction(c.Request().Context(), id, userID)
	return c.NoContent(http.StatusNoContent)
}
