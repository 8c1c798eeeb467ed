package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	api := s.E.Group("/api")

	api.GET("/sessions", s.sessionHandler.List)
	api.GET("/sessions/:id", s.sessionHandler.Get)
	api.DELETE("/sessions/:id", s.sessionHandler.Unregister)
	api.POST("/sessions/:id/presence", s.sessionHandler.SetPresence)
	api.PUT("/sessions/:id/profile", s.sessionHandler.UpdateProfile)
	api.POST("/sessions/:id/avatar", s.sessionHandler.SetAvatar)
	api.GET("/sessions/:id/unread", s.sessionHandler.Unread)

	api.POST("/messages", s.messageHandler.Send)
	api.GET("/messages", s.messageHandler.History)
	api.GET("/messages/:id", s.messageHandler.Get)
	api.POST("/messages/:id/status", s.messageHandler.UpdateStatus)
	api.POST("/messages/:id/reactions", s.messageHandler.AddReaction)
	api.DELETE("/messages/:id/reactions/:user_id", s.messageHandler.RemoveReaction)

	api.POST("/files", s.fileHandler.Store)
	api.GET("/files/:id", s.fileHandler.Content)
	api.GET("/files/:id/meta", s.fileHandler.Metadata)
	api.GET("/files/:id/raw", s.fileHandler.Raw)

	s.E.GET("/ws", s.bridge.Handler())

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
