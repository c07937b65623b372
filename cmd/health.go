package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doclib/internal/render"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health and connectivity",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	client, _ := newClient()

	// No connection preflight: health IS the connectivity check, and its
	// error is the diagnostic.
	h, err := client.Health(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(render.Bold.Render("Document Library Server Status"))
	fmt.Println(render.Rule(40))

	status := render.Green.Render(h.Status)
	if h.Status != "healthy" {
		status = render.Yellow.Render(h.Status)
	}
	fmt.Printf("Status:     %s\n", status)
	fmt.Printf("Version:    %s\n", h.Version)
	fmt.Println()

	fmt.Printf("Embedding:  %s\n", okOrFailed(h.EmbeddingServer))
	fmt.Printf("LLM:        %s\n", okOrFailed(h.LLMServer))
	fmt.Printf("Database:   %s\n", okOrFailed(h.Database))
	return nil
}

func okOrFailed(ok bool) string {
	if ok {
		return render.Green.Render("OK")
	}
	return render.Red.Render("FAILED")
}
