package main

import (
	"github.com/nfrund/chathub/internal/server"
)

func main() {
	// Create a new server instance.
	s := server.New()

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server and block until shutdown.
	s.Start(s.Cfg.Addr)
}
