package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var unreadCmd = &cobra.Command{
	Use:   "unread <session-id>",
	Short: "Show a session's unread counts",
	Long: `Show how many unread messages a session has, grouped by sender id.

Example:
  hubctl unread 2f1c9a31-...`,
	Args: cobra.ExactArgs(1),
	Run:  unreadHandler,
}

func unreadHandler(cmd *cobra.Command, args []string) {
	counts, err := client().Unread(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch unread counts: %v\n", err)
		os.Exit(1)
	}

	if len(counts.Counts) == 0 {
		fmt.Println("No unread messages")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SENDER\tUNREAD")
	for sender, n := range counts.Counts {
		fmt.Fprintf(w, "%s\t%d\n", sender, n)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(unreadCmd)
}
