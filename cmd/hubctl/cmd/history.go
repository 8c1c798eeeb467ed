package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the retained message log",
	Long: `Show the hub's message history, oldest first.

Examples:
  hubctl history               # Full retained log
  hubctl history --limit 20    # Only the most recent 20 messages`,
	Run: historyHandler,
}

func historyHandler(cmd *cobra.Command, args []string) {
	msgs, err := client().History(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch history: %v\n", err)
		os.Exit(1)
	}

	if historyFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(msgs)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSENDER\tTYPE\tSTATUS\tCONTENT")
	for _, m := range msgs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.SentAt.Local().Format("15:04:05"), m.SenderName, m.Type, m.Status, m.Content)
	}
	w.Flush()
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show only the most recent n messages (0 = all)")
	historyCmd.Flags().StringVar(&historyFormat, "format", "table", "Output format: table or json")
	rootCmd.AddCommand(historyCmd)
}
