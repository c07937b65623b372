package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"doclib/internal/api"
	"doclib/internal/imagefit"
	"doclib/internal/render"
	"doclib/internal/result"
	"doclib/internal/viewer"
)

var (
	searchLimit        int
	searchDocument     string
	searchElementsOnly bool
	searchChunksOnly   bool
	searchType         string
	searchShow         string
	searchOpen         string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents (text chunks and elements)",
	Long: `Search documents semantically across text chunks and visual elements.

Element types (-t): figure, table, equation, chart, diagram`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	searchCmd.Flags().StringVarP(&searchDocument, "document", "d", "", "Filter by document slug")
	searchCmd.Flags().BoolVar(&searchElementsOnly, "elements-only", false, "Show only elements (figures, tables, equations)")
	searchCmd.Flags().BoolVar(&searchChunksOnly, "chunks-only", false, "Show only text chunks")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "Filter by element type: figure, table, equation, chart, diagram")
	searchCmd.Flags().StringVar(&searchShow, "show", "", "Display images in terminal: --show (first), --show 1, --show 1,3,5")
	searchCmd.Flags().StringVar(&searchOpen, "open", "", "Open images in GUI viewer: --open (first), --open 1, --open 1,3,5")

	// Bare --show / --open means the first result.
	searchCmd.Flags().Lookup("show").NoOptDefVal = "1"
	searchCmd.Flags().Lookup("open").NoOptDefVal = "1"

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, serverURL := newClient()
	ctx := cmd.Context()
	checkConnection(ctx, client, serverURL)

	query := args[0]

	// A type filter implies elements only.
	elementsOnly := searchElementsOnly || searchType != ""

	fmt.Printf("%s: %s\n", render.Dim.Render("Searching"), query)

	resp, err := client.Search(ctx, api.SearchRequest{
		Query:           query,
		Limit:           searchLimit,
		DocumentSlug:    searchDocument,
		IncludeChunks:   !elementsOnly,
		IncludeElements: !searchChunksOnly,
		ElementType:     searchType,
	})
	if err != nil {
		return err
	}

	if len(resp.Results) == 0 {
		fmt.Println("\nNo results found.")
		return nil
	}

	fmt.Printf("\n%s results:\n\n", render.GreenBold.Render(strconv.Itoa(resp.Total)))

	results := result.FromAPIList(resp.Results)
	for n, r := range results {
		fmt.Println(render.FormatResult(n+1, r, true))
		fmt.Println()
	}

	if searchShow != "" {
		tokens := parseIndices(searchShow)
		if len(tokens) == 0 {
			fmt.Println("Usage: --show <N> or --show 1,3,5")
		} else {
			fmt.Println(render.Rule(40))
			showResults(ctx, os.Stdout, client, results, tokens)
		}
	}
	if searchOpen != "" {
		tokens := parseIndices(searchOpen)
		if len(tokens) == 0 {
			fmt.Println("Usage: --open <N> or --open 1,3,5")
		} else {
			openResults(ctx, os.Stdout, client, results, tokens)
		}
	}
	return nil
}

// indexToken is one element of a --show/--open index list. Malformed tokens
// (non-numeric, zero, negative) are kept so errors stay in input order.
type indexToken struct {
	raw string
	n   int // 1-based; valid only when ok
	ok  bool
}

// parseIndices splits a comma- or whitespace-separated 1-based index list.
// Returns nil when the argument contains no tokens at all.
func parseIndices(arg string) []indexToken {
	fields := strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	tokens := make([]indexToken, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		tokens = append(tokens, indexToken{raw: f, n: n, ok: err == nil && n >= 1})
	}
	return tokens
}

// resolveToken validates one index token against the result set, printing the
// appropriate per-item error. A bad token never aborts its siblings.
func resolveToken(out io.Writer, results []result.Result, tok indexToken) (result.Result, bool) {
	if !tok.ok {
		fmt.Fprintf(out, "Invalid index %q. Indices are numbers starting at 1.\n", tok.raw)
		return result.Result{}, false
	}
	if tok.n > len(results) {
		fmt.Fprintf(out, "Invalid index [%d]. Use 1-%d\n", tok.n, len(results))
		return result.Result{}, false
	}
	return results[tok.n-1], true
}

func showResults(ctx context.Context, out io.Writer, client *api.Client, results []result.Result, tokens []indexToken) {
	v := viewer.New()
	term := imagefit.DetectTerminal()

	for _, tok := range tokens {
		r, ok := resolveToken(out, results, tok)
		if !ok {
			continue
		}

		if !r.IsElement() {
			fmt.Fprintf(out, "[%d] is a text chunk, no image available.\n", tok.n)
			continue
		}
		ref, ok := r.BestImageRef()
		if !ok {
			continue
		}

		elem, _ := r.Element()
		fmt.Fprintf(out, "\n%s: %s\n", render.Yellow.Render(strings.ToUpper(string(elem.Type))), elem.Label)
		fmt.Fprintf(out, "From: %s, page %d\n\n", r.DocumentTitle, r.PageNumber)

		data, err := client.FetchImage(ctx, r.DocumentSlug, ref)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", render.Red.Render("Failed to display image"), err)
			continue
		}

		size := imagefit.Plan(elem.Width, elem.Height, elem.Type, term)
		if err := v.RenderTerminal(data, size.String()); err != nil {
			if viewer.IsRendererMissing(err) {
				fmt.Fprintln(out, viewer.InstallHint)
			} else {
				fmt.Fprintf(out, "%s: %v\n", render.Red.Render("Failed to display image"), err)
			}
		}
	}
}

func openResults(ctx context.Context, out io.Writer, client *api.Client, results []result.Result, tokens []indexToken) {
	v := viewer.New()

	for _, tok := range tokens {
		r, ok := resolveToken(out, results, tok)
		if !ok {
			continue
		}

		if !r.IsElement() {
			fmt.Fprintf(out, "[%d] is a text chunk, no image available.\n", tok.n)
			continue
		}
		ref, ok := r.BestImageRef()
		if !ok {
			continue
		}

		elem, _ := r.Element()
		fmt.Fprintf(out, "Opening %s: %s\n", render.Yellow.Render(strings.ToUpper(string(elem.Type))), elem.Label)

		data, err := client.FetchImage(ctx, r.DocumentSlug, ref)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", render.Red.Render("Failed to open image"), err)
			continue
		}
		if _, err := v.OpenGUI(data); err != nil {
			fmt.Fprintf(out, "%s: %v\n", render.Red.Render("Failed to open image"), err)
		}
	}
}
