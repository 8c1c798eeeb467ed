package server_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nfrund/chathub/internal/server"
)

// setupIntegrationTest encapsulates the boilerplate for setting up a full
// server instance for integration testing. It returns the server, the test
// HTTP server in front of it, and a cleanup function to be deferred.
func setupIntegrationTest(t *testing.T) (*server.Server, *httptest.Server, func()) {
	t.Helper()

	// Point the blob store at a throwaway directory and keep history small.
	t.Setenv("BLOB_DIR", t.TempDir())
	t.Setenv("HISTORY_CAP", "100")
	t.Setenv("LOG_LEVEL", "error")

	s := server.New()
	s.RegisterRoutes()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.StartCommands(ctx))

	testServer := httptest.NewServer(s.E)

	cleanup := func() {
		testServer.Close()
		cancel()
		s.Hub().Close()
	}
	return s, testServer, cleanup
}
