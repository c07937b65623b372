package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doclib/internal/api"
	"doclib/internal/config"
	"doclib/internal/logger"
	"doclib/internal/render"
)

var (
	serverFlag            string
	debugMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "doclib",
	Short: "Search and chat with the document library",
	Long: `doclib is a client for a document-library server: semantic search over
text chunks and visual elements (figures, tables, equations), LLM-backed
question answering with citations, and page-level browsing with terminal
image preview.

Running doclib with no subcommand starts interactive chat mode.`,
	Example: `  doclib                                Start interactive chat
  doclib docs                           List all documents
  doclib doc usgs_snyder                Show document details
  doclib search "mercator projection"   Search all content
  doclib search "area" -t equation      Search only equations
  doclib search "habitat" -t table --show   Search tables, display image
  doclib ask "What is a geodesic?"      One-shot question`,
	RunE:          runChat,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "",
		"Server URL (default "+config.DefaultServerURL+", env "+config.ServerURLEnv+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"Enable debug logging to "+logger.DefaultLogPath)
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("doclib %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("doclib %s\n", version)
}

// newClient builds the API client from the resolved server URL.
func newClient() (*api.Client, string) {
	serverURL := config.ServerURL(serverFlag)
	return api.New(serverURL), serverURL
}

// checkConnection verifies the server is reachable before running a command
// that needs it. On failure it prints setup guidance and exits: the usual
// cause is a missing SSH tunnel, and a bare error message doesn't help there.
func checkConnection(ctx context.Context, client *api.Client, serverURL string) {
	if _, err := client.Health(ctx); err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s: Could not connect to server at %s\n\n",
		render.RedBold.Render("Error"), serverURL)
	fmt.Fprintln(os.Stderr, "The document library server is not running or not accessible.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "If you're on the server:")
	fmt.Fprintln(os.Stderr, "  - Check that the server process is running and listening")
	fmt.Fprintln(os.Stderr, "  - Check the server log for startup errors")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "If you're on a remote machine:")
	fmt.Fprintln(os.Stderr, "  - Set up SSH port forwarding:")
	fmt.Fprintln(os.Stderr, "    ssh -L 8095:localhost:8095 <server-host>")
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}
