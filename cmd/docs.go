package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"doclib/internal/render"
)

var (
	docsPage  int
	docsLimit int
	docsSort  string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List all documents in the library",
	Args:  cobra.NoArgs,
	RunE:  runDocs,
}

func init() {
	docsCmd.Flags().IntVarP(&docsPage, "page", "p", 1, "Page number (1-indexed)")
	docsCmd.Flags().IntVarP(&docsLimit, "limit", "n", 20, "Results per page")
	docsCmd.Flags().StringVarP(&docsSort, "sort", "s", "title", "Sort by: title, date_added, page_count")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	client, serverURL := newClient()
	ctx := cmd.Context()
	checkConnection(ctx, client, serverURL)

	resp, err := client.ListDocuments(ctx, docsPage, docsLimit, docsSort)
	if err != nil {
		return err
	}

	fmt.Println(render.Bold.Render("Document Library"))
	fmt.Println(render.Rule(50))
	fmt.Printf("Page %d of %d (%d documents total)\n\n",
		resp.Page, resp.TotalPages, resp.TotalDocuments)

	for _, doc := range resp.Documents {
		fmt.Println(render.Bold.Render(doc.Title))
		fmt.Printf("  Slug: %s  |  Pages: %d\n", render.Cyan.Render(doc.Slug), doc.TotalPages)
		if len(doc.Keywords) > 0 {
			kw := doc.Keywords
			if len(kw) > 5 {
				kw = kw[:5]
			}
			fmt.Printf("  Keywords: %s\n", render.Dim.Render(strings.Join(kw, ", ")))
		}
		if doc.Summary != "" {
			fmt.Printf("  %s\n", render.Dim.Render(render.Preview(doc.Summary, 150)))
		}
		fmt.Println()
	}

	if resp.TotalPages > 1 {
		fmt.Printf("Use %s to see more pages\n",
			render.Cyan.Render(fmt.Sprintf("--page %d", docsPage+1)))
	}
	return nil
}
