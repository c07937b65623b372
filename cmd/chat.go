package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"doclib/internal/chat"
	"doclib/internal/viewer"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat mode (default when no command given)",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	client, serverURL := newClient()
	ctx := cmd.Context()
	checkConnection(ctx, client, serverURL)

	return chat.Run(ctx, client, viewer.New(), os.Stdout)
}
