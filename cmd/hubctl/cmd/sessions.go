package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	sessionsOnlineOnly bool
	sessionsFormat     string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List known sessions",
	Long: `List the sessions the hub knows about, offline ones included.

Examples:
  hubctl sessions                  # All sessions in table format
  hubctl sessions --online         # Only currently connected sessions
  hubctl sessions --format json    # Machine-readable output`,
	Run: sessionsHandler,
}

func sessionsHandler(cmd *cobra.Command, args []string) {
	sessions, err := client().Sessions(sessionsOnlineOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to list sessions: %v\n", err)
		os.Exit(1)
	}

	if sessionsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(sessions)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHOST\tPRESENCE\tSTATUS")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Host, s.Presence, s.DisplayStatus)
	}
	w.Flush()
}

func init() {
	sessionsCmd.Flags().BoolVar(&sessionsOnlineOnly, "online", false, "Show only connected sessions")
	sessionsCmd.Flags().StringVar(&sessionsFormat, "format", "table", "Output format: table or json")
	rootCmd.AddCommand(sessionsCmd)
}
