package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	sendFrom string
	sendTo   string
)

var sendCmd = &cobra.Command{
	Use:   "send <content>",
	Short: "Post a message",
	Long: `Post a message on behalf of a session. Without --to the message is
broadcast to every known session.

Examples:
  hubctl send --from <session-id> "hello everyone"
  hubctl send --from <session-id> --to <recipient-id> "just for you"`,
	Args: cobra.ExactArgs(1),
	Run:  sendHandler,
}

func sendHandler(cmd *cobra.Command, args []string) {
	msg, err := client().Send(sendFrom, sendTo, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to send message: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sent %s\n", msg.ID)
}

func init() {
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "Sender session id (required)")
	sendCmd.Flags().StringVar(&sendTo, "to", "", "Recipient session id (empty = broadcast)")
	sendCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(sendCmd)
}
