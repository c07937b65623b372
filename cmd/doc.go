package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"doclib/internal/render"
)

var docCmd = &cobra.Command{
	Use:   "doc <slug>",
	Short: "Get detailed info about a specific document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
}

func runDoc(cmd *cobra.Command, args []string) error {
	client, serverURL := newClient()
	ctx := cmd.Context()
	checkConnection(ctx, client, serverURL)

	doc, err := client.GetDocument(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(render.Bold.Render(doc.Title))
	fmt.Println(render.Rule(50))
	fmt.Printf("Slug:       %s\n", render.Cyan.Render(doc.Slug))
	fmt.Printf("Pages:      %d\n", doc.TotalPages)
	if doc.SourceFile != "" {
		fmt.Printf("Source:     %s\n", doc.SourceFile)
	}
	if doc.ExtractionDate != "" {
		fmt.Printf("Extracted:  %s\n", doc.ExtractionDate)
	}
	if doc.License != "" {
		fmt.Printf("License:    %s\n", doc.License)
	}

	total := 0
	for _, c := range doc.ElementCounts {
		total += c
	}
	if total > 0 {
		fmt.Printf("\n%s\n", render.Bold.Render("Elements:"))
		types := make([]string, 0, len(doc.ElementCounts))
		for t := range doc.ElementCounts {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			if doc.ElementCounts[t] > 0 {
				fmt.Printf("  %-12s %d\n", t+":", doc.ElementCounts[t])
			}
		}
	}

	if len(doc.Keywords) > 0 {
		fmt.Printf("\n%s\n", render.Bold.Render("Keywords:"))
		fmt.Printf("  %s\n", strings.Join(doc.Keywords, ", "))
	}
	if doc.Summary != "" {
		fmt.Printf("\n%s\n", render.Bold.Render("Summary:"))
		fmt.Println(doc.Summary)
	}

	fmt.Printf("\n%s\n", render.Dim.Render("Usage:"))
	fmt.Printf("  Search:  doclib search \"query\" -d %s\n", doc.Slug)
	fmt.Printf("  Chat:    doclib ask \"question\" -d %s\n", doc.Slug)
	return nil
}
