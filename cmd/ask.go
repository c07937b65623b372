package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doclib/internal/api"
	"doclib/internal/render"
)

var (
	askLimit    int
	askDocument string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and get an LLM-powered answer with citations",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 8, "Maximum context results")
	askCmd.Flags().StringVarP(&askDocument, "document", "d", "", "Filter by document slug")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, serverURL := newClient()
	ctx := cmd.Context()
	checkConnection(ctx, client, serverURL)

	question := args[0]
	fmt.Printf("%s: %s\n", render.Dim.Render("Question"), question)
	fmt.Println(render.Dim.Render("Thinking..."))

	resp, err := client.Chat(ctx, api.ChatRequest{
		Question:     question,
		Limit:        askLimit,
		DocumentSlug: askDocument,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n\n", resp.Answer)

	if len(resp.Sources) > 0 {
		elemCount := 0
		for _, s := range resp.Sources {
			if s.SourceType == "element" {
				elemCount++
			}
		}
		fmt.Printf("(%d sources, %d elements - type 'sources' in chat mode to see details)\n\n",
			len(resp.Sources), elemCount)
	}
	return nil
}
