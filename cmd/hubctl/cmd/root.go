package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/chathub/cmd/hubctl/internal/api"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "hubctl",
	Short: "Chathub CLI tool",
	Long: `hubctl is a command-line interface for a running chathub server.

Available commands:
  sessions    List known sessions
  history     Show the retained message log
  unread      Show a session's unread counts
  send        Post a message
  files       Upload and inspect stored files

Use "hubctl [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the chathub server")
}

// client builds the API client from the --server flag.
func client() *api.Client {
	return api.New(serverURL)
}
