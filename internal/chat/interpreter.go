package chat

import (
	"context"
	"fmt"
	"io"

	"doclib/internal/api"
	"doclib/internal/imagefit"
	"doclib/internal/logger"
	"doclib/internal/render"
	"doclib/internal/result"
	"doclib/internal/viewer"
)

// Gateway is the server surface the interpreter consumes. The api.Client
// satisfies it; tests use a fake.
type Gateway interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	ListDocuments(ctx context.Context, page, pageSize int, sortBy string) (*api.DocumentListResponse, error)
	GetDocument(ctx context.Context, slug string) (*api.DocumentDetailResponse, error)
	GetPage(ctx context.Context, slug string, pageNumber int) (*api.PageResponse, error)
	FetchImage(ctx context.Context, slug, ref string) ([]byte, error)
}

// Displayer is the image display capability (terminal render + GUI open).
type Displayer interface {
	RenderTerminal(data []byte, size string) error
	OpenGUI(data []byte) (string, error)
}

// docsPageSize is how many documents one REPL 'docs' page shows.
const docsPageSize = 5

// pageRenderSize is the fixed terminal size for full page images.
const pageRenderSize = "80x40"

// Interpreter processes one input line at a time against the session state.
// It is strictly single-threaded: each command runs to completion before the
// next line is read, so session state needs no locking.
type Interpreter struct {
	gw   Gateway
	view Displayer
	sess *Session
	out  io.Writer

	// term is swappable so tests get a deterministic grid.
	term func() imagefit.Terminal
}

// NewInterpreter creates an interpreter with a fresh session.
func NewInterpreter(gw Gateway, view Displayer, out io.Writer) *Interpreter {
	return &Interpreter{
		gw:   gw,
		view: view,
		sess: NewSession(),
		out:  out,
		term: imagefit.DetectTerminal,
	}
}

// Session exposes the session state, primarily for tests.
func (i *Interpreter) Session() *Session {
	return i.sess
}

// Execute processes one input line. Returns true when the session should end.
func (i *Interpreter) Execute(ctx context.Context, input string) bool {
	cmd := Parse(input)
	logger.Debug("command kind=%d input=%q", cmd.kind, input)

	switch cmd.kind {
	case cmdQuit:
		fmt.Fprintln(i.out, "Goodbye!")
		return true
	case cmdHelp:
		i.printHelp()
	case cmdSources:
		i.printSources()
	case cmdShow:
		i.handleShow(ctx, cmd.arg)
	case cmdOpen:
		i.handleOpen(ctx, cmd.arg)
	case cmdShowPage:
		i.handlePageView(ctx, cmd.slug, cmd.page, "show page")
	case cmdOpenPage:
		i.handleOpenPage(ctx, cmd.slug, cmd.page)
	case cmdPage:
		i.handlePageView(ctx, cmd.slug, cmd.page, "page")
	case cmdDocs:
		i.handleDocs(ctx, 1)
	case cmdNext:
		i.handleNav(ctx, +1)
	case cmdPrev:
		i.handleNav(ctx, -1)
	case cmdDoc:
		i.handleDoc(ctx, cmd.arg)
	case cmdElements:
		i.handleElements(ctx, cmd)
	case cmdSearch:
		i.handleSearch(ctx, cmd.arg)
	case cmdAsk:
		i.handleAsk(ctx, cmd.arg)
	case cmdUsage:
		fmt.Fprintf(i.out, "%s\n\n", cmd.usage)
	}
	return false
}

func (i *Interpreter) printError(err error) {
	fmt.Fprintf(i.out, "%s: %v\n\n", render.Red.Render("Error"), err)
}

func (i *Interpreter) printHelp() {
	fmt.Fprintf(i.out, "\n%s\n", render.Bold.Render("Browse:"))
	fmt.Fprintln(i.out, "  docs              List documents in library")
	fmt.Fprintln(i.out, "  doc <N|slug>      Select document (e.g., 'doc 1' or 'doc usgs_snyder')")
	fmt.Fprintln(i.out, "  page [slug] <N>   View page (e.g., 'page 55' or 'page usgs_snyder 55')")
	fmt.Fprintln(i.out, "  next/n, prev/p    Navigate to next/previous page")
	fmt.Fprintln(i.out)
	fmt.Fprintf(i.out, "%s\n", render.Bold.Render("Elements:"))
	fmt.Fprintln(i.out, "  figures           List figures on current page (or 'figures all')")
	fmt.Fprintln(i.out, "  tables            List tables on current page (or 'tables all')")
	fmt.Fprintln(i.out, "  equations         List equations on current page (or 'equations all')")
	fmt.Fprintln(i.out)
	fmt.Fprintf(i.out, "%s\n", render.Bold.Render("View:"))
	fmt.Fprintln(i.out, "  show <N>          Show element in terminal (e.g., 'show 1' or 'show 1,2,3')")
	fmt.Fprintln(i.out, "  open <N>          Open element in GUI viewer")
	fmt.Fprintln(i.out, "  open page <N>     Open page in GUI viewer")
	fmt.Fprintln(i.out)
	fmt.Fprintf(i.out, "%s\n", render.Bold.Render("Search:"))
	fmt.Fprintln(i.out, "  search <query>    Semantic search (no LLM)")
	fmt.Fprintln(i.out, "  sources           Show sources from last answer")
	fmt.Fprintln(i.out, "  <question>        Ask a question (uses LLM)")
	fmt.Fprintln(i.out)
	fmt.Fprintf(i.out, "%s\n", render.Bold.Render("Other:"))
	fmt.Fprintln(i.out, "  help              Show this help")
	fmt.Fprintln(i.out, "  quit/exit/q       Exit")
	fmt.Fprintln(i.out)
}

func (i *Interpreter) printSources() {
	if len(i.sess.Sources) == 0 {
		fmt.Fprintf(i.out, "No sources available. Ask a question first.\n\n")
		return
	}
	fmt.Fprintf(i.out, "\n%s\n\n", render.FormatSources(i.sess.Sources))
}

// resolveIndex validates one token of an index list against the current
// result set, printing the appropriate per-item error. Out-of-range and
// malformed tokens never abort their siblings.
func (i *Interpreter) resolveIndex(tok indexToken) (result.Result, bool) {
	if !tok.ok {
		fmt.Fprintf(i.out, "Invalid index %q. Indices are numbers starting at 1.\n\n", tok.raw)
		return result.Result{}, false
	}
	if tok.n > len(i.sess.Sources) {
		fmt.Fprintf(i.out, "Invalid index [%d]. Use 1-%d\n\n", tok.n, len(i.sess.Sources))
		return result.Result{}, false
	}
	return i.sess.Sources[tok.n-1], true
}

// handleShow renders elements from the current result set in the terminal.
func (i *Interpreter) handleShow(ctx context.Context, arg string) {
	if len(i.sess.Sources) == 0 {
		fmt.Fprintf(i.out, "No results to show. Ask a question first.\n\n")
		return
	}
	tokens := parseIndexTokens(arg)
	if len(tokens) == 0 {
		fmt.Fprintf(i.out, "Usage: show <number> or show 1,2,3\n\n")
		return
	}

	for _, tok := range tokens {
		r, ok := i.resolveIndex(tok)
		if !ok {
			continue
		}

		if !r.IsElement() {
			fmt.Fprintf(i.out, "[%d] is a text chunk, no image available.\n\n", tok.n)
			fmt.Fprintf(i.out, "Content: %s\n\n", render.Preview(r.Content, 200))
			continue
		}

		ref, ok := r.BestImageRef()
		if !ok {
			fmt.Fprintf(i.out, "[%d] has no image path.\n\n", tok.n)
			continue
		}

		elem, _ := r.Element()
		i.printElementHeader(elem, r)

		data, err := i.gw.FetchImage(ctx, r.DocumentSlug, ref)
		if err != nil {
			fmt.Fprintf(i.out, "%s: %v\n", render.Red.Render("Failed to display image"), err)
			fmt.Fprintf(i.out, "%s: %s/%s\n", render.Dim.Render("Image path"), r.DocumentSlug, ref)
			continue
		}

		size := imagefit.Plan(elem.Width, elem.Height, elem.Type, i.term())
		i.renderImage(data, size.String(), r.DocumentSlug, ref)
	}
}

// handleOpen opens elements from the current result set in the GUI viewer.
func (i *Interpreter) handleOpen(ctx context.Context, arg string) {
	if len(i.sess.Sources) == 0 {
		fmt.Fprintf(i.out, "No results to open. Ask a question first.\n\n")
		return
	}
	tokens := parseIndexTokens(arg)
	if len(tokens) == 0 {
		fmt.Fprintf(i.out, "Usage: open <number> or open 1,2,3\n\n")
		return
	}

	for _, tok := range tokens {
		r, ok := i.resolveIndex(tok)
		if !ok {
			continue
		}

		if !r.IsElement() {
			fmt.Fprintf(i.out, "[%d] is a text chunk, no image available.\n\n", tok.n)
			continue
		}

		ref, ok := r.BestImageRef()
		if !ok {
			fmt.Fprintf(i.out, "[%d] has no image path.\n\n", tok.n)
			continue
		}

		elem, _ := r.Element()
		fmt.Fprintf(i.out, "Opening %s: %s\n",
			render.Yellow.Render(upperType(elem.Type)), elem.Label)

		data, err := i.gw.FetchImage(ctx, r.DocumentSlug, ref)
		if err != nil {
			fmt.Fprintf(i.out, "%s: %v\n", render.Red.Render("Failed to open image"), err)
			continue
		}

		path, err := i.view.OpenGUI(data)
		if err != nil {
			fmt.Fprintf(i.out, "%s: %v\n", render.Red.Render("Failed to open image"), err)
			continue
		}
		fmt.Fprintf(i.out, "Opened: %s\n", path)
	}
}

func (i *Interpreter) printElementHeader(elem result.Element, r result.Result) {
	fmt.Fprintf(i.out, "\n%s: %s\n", render.Yellow.Render(upperType(elem.Type)), elem.Label)
	fmt.Fprintf(i.out, "From: %s, page %d\n\n", r.DocumentTitle, r.PageNumber)
}

// renderImage displays raw image bytes in the terminal, degrading to a
// textual notice when no renderer is available.
func (i *Interpreter) renderImage(data []byte, size, slug, ref string) {
	err := i.view.RenderTerminal(data, size)
	if err == nil {
		fmt.Fprintln(i.out)
		return
	}
	if viewer.IsRendererMissing(err) {
		fmt.Fprintln(i.out, viewer.InstallHint)
		return
	}
	fmt.Fprintf(i.out, "%s: %v\n", render.Red.Render("Failed to display image"), err)
	if ref != "" {
		fmt.Fprintf(i.out, "%s: %s/%s\n", render.Dim.Render("Image path"), slug, ref)
	}
}
