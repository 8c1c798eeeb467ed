package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// StartCommands begins consuming client command frames from the bus. It
// must run before any WebSocket client connects.
func (s *Server) StartCommands(ctx context.Context) error {
	return s.commands.Start(ctx, s.bus)
}

// Start runs the HTTP server and the bus command subscriber, then blocks
// until an interrupt arrives and everything is drained.
func (s *Server) Start(addr string) {
	subCtx, stopSub := context.WithCancel(context.Background())
	defer stopSub()

	if err := s.StartCommands(subCtx); err != nil {
		s.E.Logger.Fatalf("starting command subscriber: %v", err)
	}

	go func() {
		if err := s.E.Start(addr); err != nil && err != http.ErrServerClosed {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	waitForShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.E.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
	stopSub()
	if err := s.bus.Close(); err != nil {
		slog.Error("Failed to close the message bus", "error", err)
	}
	s.hub.Close()
}
