// Package server assembles the hub, its transports and the HTTP surface
// into a runnable service.
package server

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"

	"github.com/nfrund/chathub/internal/blobstore"
	"github.com/nfrund/chathub/internal/config"
	"github.com/nfrund/chathub/internal/handlers"
	"github.com/nfrund/chathub/internal/history"
	"github.com/nfrund/chathub/internal/hub"
	"github.com/nfrund/chathub/internal/logging"
	"github.com/nfrund/chathub/internal/middleware"
	"github.com/nfrund/chathub/internal/pubsub"
	"github.com/nfrund/chathub/internal/session"
	"github.com/nfrund/chathub/internal/unread"
	"github.com/nfrund/chathub/internal/websocket"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	injector do.Injector

	hub      *hub.Hub
	bus      *pubsub.WatermillBridge
	bridge   *websocket.Bridge
	commands *websocket.Commands

	sessionHandler *handlers.SessionHandler
	messageHandler *handlers.MessageHandler
	fileHandler    *handlers.FileHandler
}

// New creates a new Server instance with every dependency wired through the
// injector. Configuration comes from the environment, so tests point
// BLOB_DIR and friends at throwaway locations before calling this.
func New() *Server {
	injector := do.New()
	logging.New()

	do.Provide(injector, func(do.Injector) (*config.Config, error) {
		return config.New(), nil
	})
	do.Provide(injector, func(do.Injector) (afero.Fs, error) {
		return afero.NewOsFs(), nil
	})
	do.Provide(injector, func(i do.Injector) (*blobstore.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blobstore.New(do.MustInvoke[afero.Fs](i), cfg.BlobDir, slog.Default())
	})
	do.Provide(injector, func(do.Injector) (*session.Registry, error) {
		return session.NewRegistry(), nil
	})
	do.Provide(injector, func(i do.Injector) (*history.Log, error) {
		return history.NewLog(do.MustInvoke[*config.Config](i).HistoryCap), nil
	})
	do.Provide(injector, func(do.Injector) (*unread.Index, error) {
		return unread.NewIndex(), nil
	})
	do.Provide(injector, func(i do.Injector) (*hub.Hub, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return hub.New(
			do.MustInvoke[*session.Registry](i),
			do.MustInvoke[*history.Log](i),
			do.MustInvoke[*unread.Index](i),
			do.MustInvoke[*blobstore.Store](i),
			slog.Default(),
			hub.Options{
				DeliveryTimeout: cfg.DeliveryTimeout,
				FanoutWorkers:   cfg.FanoutWorkers,
			},
		), nil
	})
	do.Provide(injector, func(do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})
	do.Provide(injector, func(i do.Injector) (*websocket.Bridge, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return websocket.NewBridge(
			do.MustInvoke[*hub.Hub](i),
			do.MustInvoke[*pubsub.WatermillBridge](i),
			cfg.SendBuffer,
			slog.Default(),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*websocket.Commands, error) {
		return websocket.NewCommands(do.MustInvoke[*hub.Hub](i), slog.Default()), nil
	})

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	h, err := do.Invoke[*hub.Hub](injector)
	if err != nil {
		slog.Error("Failed to build hub", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.Logger)

	return &Server{
		E:              e,
		Cfg:            cfg,
		injector:       injector,
		hub:            h,
		bus:            do.MustInvoke[*pubsub.WatermillBridge](injector),
		bridge:         do.MustInvoke[*websocket.Bridge](injector),
		commands:       do.MustInvoke[*websocket.Commands](injector),
		sessionHandler: handlers.NewSessionHandler(h),
		messageHandler: handlers.NewMessageHandler(h),
		fileHandler:    handlers.NewFileHandler(h),
	}
}

// Hub is a getter for the server's hub, useful for testing.
func (s *Server) Hub() *hub.Hub {
	return s.hub
}
