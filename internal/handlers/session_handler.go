// Package handlers contains the echo HTTP handlers for the hub's REST
// surface. Registration is deliberately absent here: a session is created
// when its WebSocket callback channel connects.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/middleware"
)

// SessionHandler serves the session roster and per-session operations.
type SessionHandler struct {
	hub *hub.Hub
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(h *hub.Hub) *SessionHandler {
	return &SessionHandler{hub: h}
}

// List returns every known session. The historical behavior of the service
// was to return offline sessions too, and that remains the default;
// ?online=true applies the honest filter.
func (h *SessionHandler) List(c echo.Context) error {
	var sessions []domain.Session
	if c.QueryParam("online") == "true" {
		sessions = h.hub.OnlineSessions()
	} else {
		sessions = h.hub.Sessions()
	}
	return c.JSON(http.StatusOK, NewSessionResponses(sessions))
}

// Get returns one session by id.
func (h *SessionHandler) Get(c echo.Context) error {
	s, err := h.hub.Session(c.Param("id"))
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, NewSessionResponse(s))
}

// Unregister marks the session offline. Idempotent; unknown ids succeed.
func (h *SessionHandler) Unregister(c echo.Context) error {
	h.hub.Unregister(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// SetPresence changes the session's presence status.
func (h *SessionHandler) SetPresence(c echo.Context) error {
	var req PresenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err := h.hub.SetPresence(c.Request().Context(), c.Param("id"), domain.PresenceStatus(req.Status))
	if err != nil {
		return notFound(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile replaces the session's profile fields.
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.hub.UpdateProfile(c.Request().Context(), c.Param("id"), domain.Session{
		Name:          req.Name,
		Email:         req.Email,
		StatusMessage: req.StatusMessage,
	})
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, NewSessionResponse(updated))
}

// SetAvatar stores the uploaded image as a blob and points the session's
// profile at it.
func (h *SessionHandler) SetAvatar(c echo.Context) error {
	ctx := c.Request().Context()
	var req AvatarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	blobID, err := h.hub.SetAvatar(ctx, c.Param("id"), req.Content, req.ContentType)
	if err != nil {
		if hub.IsNotFound(err) {
			return notFound(err)
		}
		middleware.FromContext(ctx).Error("Failed to store avatar", "session_id", c.Param("id"), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store avatar")
	}
	return c.JSON(http.StatusOK, AvatarResponse{BlobID: blobID})
}

// Unread returns the session's unread message counts grouped by sender.
func (h *SessionHandler) Unread(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, UnreadResponse{
		SessionID: id,
		Counts:    h.hub.UnreadCounts(id),
	})
}

// bindAndValidate binds the request body into req and runs validation,
// mapping failures to 400s.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// notFound maps a hub not-found sentinel to a 404.
func notFound(err error) error {
	return echo.NewHTTPError(http.StatusNotFound, err.Error())
}
