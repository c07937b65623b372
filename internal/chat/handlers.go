package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"doclib/internal/api"
	"doclib/internal/render"
	"doclib/internal/result"
)

func upperType(t result.ElementType) string {
	if t == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(string(t))
}

// resolvePageSlug resolves which document a page-targeted command refers to:
// an explicit slug wins, then the currently selected document.
func (i *Interpreter) resolvePageSlug(slug, verb string) (string, bool) {
	if slug != "" {
		return slug, true
	}
	if i.sess.CurrentDoc != "" {
		return i.sess.CurrentDoc, true
	}
	fmt.Fprintf(i.out, "Use 'doc <slug>' first, or specify: %s <slug> <N>\n\n", verb)
	return "", false
}

// handlePageView fetches a page and renders it in the terminal. On success it
// becomes the current page view and selects the document.
func (i *Interpreter) handlePageView(ctx context.Context, slug string, pageNum int, verb string) {
	slug, ok := i.resolvePageSlug(slug, verb)
	if !ok {
		return
	}

	fmt.Fprintf(i.out, "Loading page %d...", pageNum)

	page, err := i.gw.GetPage(ctx, slug, pageNum)
	if err != nil {
		fmt.Fprintln(i.out)
		i.printError(err)
		return
	}
	fmt.Fprintf(i.out, " done\n\n")

	i.printPageHeader(page)

	data, err := base64.StdEncoding.DecodeString(page.ImageBase64)
	if err != nil {
		fmt.Fprintf(i.out, "%s: %v\n", render.Red.Render("Error displaying image"), err)
	} else {
		i.renderImage(data, pageRenderSize, "", "")
	}

	i.sess.SetPageView(slug, page.PageNumber, page.TotalPages)
}

// handleOpenPage fetches a page and hands it to the GUI viewer.
func (i *Interpreter) handleOpenPage(ctx context.Context, slug string, pageNum int) {
	slug, ok := i.resolvePageSlug(slug, "open page")
	if !ok {
		return
	}

	fmt.Fprintf(i.out, "Loading page %d...", pageNum)

	page, err := i.gw.GetPage(ctx, slug, pageNum)
	if err != nil {
		fmt.Fprintln(i.out)
		i.printError(err)
		return
	}
	fmt.Fprintf(i.out, " opening\n")

	data, err := base64.StdEncoding.DecodeString(page.ImageBase64)
	if err != nil {
		i.printError(err)
		return
	}
	if path, err := i.view.OpenGUI(data); err != nil {
		i.printError(err)
	} else {
		fmt.Fprintf(i.out, "Opened: %s\n", path)
	}

	// Opening still counts as viewing for next/prev and element scoping.
	i.sess.SetPageView(slug, page.PageNumber, page.TotalPages)
}

func (i *Interpreter) printPageHeader(page *api.PageResponse) {
	fmt.Fprintf(i.out, "%s p.%d/%d\n",
		render.Bold.Render(page.DocumentTitle), page.PageNumber, page.TotalPages)
	if page.Summary != "" {
		fmt.Fprintf(i.out, "%s: %s\n", render.Dim.Render("Summary"), page.Summary)
	}
	if len(page.Keywords) > 0 {
		fmt.Fprintf(i.out, "%s: %s\n", render.Dim.Render("Keywords"), strings.Join(page.Keywords, ", "))
	}
	fmt.Fprintln(i.out)
}

// handleNav serves next/prev. The same two tokens navigate document pages
// when a page is being viewed, and the document list otherwise; the page
// context wins whenever it exists.
func (i *Interpreter) handleNav(ctx context.Context, delta int) {
	if pv := i.sess.PageView; pv != nil {
		if delta > 0 && pv.Page >= pv.TotalPages {
			fmt.Fprintf(i.out, "Already on last page (%d/%d).\n\n", pv.Page, pv.TotalPages)
			return
		}
		if delta < 0 && pv.Page <= 1 {
			fmt.Fprintf(i.out, "Already on first page.\n\n")
			return
		}
		i.handlePageView(ctx, pv.Slug, pv.Page+delta, "page")
		return
	}

	cursor := i.sess.DocCursor
	if cursor.Page == 0 {
		fmt.Fprintf(i.out, "Use 'docs' first to list documents.\n\n")
		return
	}
	if delta > 0 && cursor.Page >= cursor.TotalPages {
		fmt.Fprintf(i.out, "Already on last page.\n\n")
		return
	}
	if delta < 0 && cursor.Page <= 1 {
		fmt.Fprintf(i.out, "Already on first page.\n\n")
		return
	}
	i.handleDocs(ctx, cursor.Page+delta)
}

// handleDocs fetches and prints one page of the document list.
func (i *Interpreter) handleDocs(ctx context.Context, targetPage int) {
	resp, err := i.gw.ListDocuments(ctx, targetPage, docsPageSize, "title")
	if err != nil {
		i.printError(err)
		return
	}

	slugs := make([]string, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		slugs = append(slugs, d.Slug)
	}
	i.sess.SetDocCursor(resp.Page, resp.TotalPages, slugs)

	fmt.Fprintf(i.out, "\n%s (page %d/%d)\n",
		render.Bold.Render("Documents in library:"), resp.Page, resp.TotalPages)
	fmt.Fprintln(i.out, render.Rule(50))
	for n, doc := range resp.Documents {
		fmt.Fprintf(i.out, "[%s] %s - %d pages\n",
			render.Yellow.Render(strconv.Itoa(n+1)),
			render.Cyan.Render(doc.Slug),
			doc.TotalPages)
		fmt.Fprintf(i.out, "    %s\n", doc.Title)
		if len(doc.Keywords) > 0 {
			kw := doc.Keywords
			if len(kw) > 4 {
				kw = kw[:4]
			}
			fmt.Fprintf(i.out, "    %s\n", render.Dim.Render(strings.Join(kw, ", ")))
		}
	}

	navHint := ""
	if resp.TotalPages > 1 {
		navHint = " | 'n'=next, 'p'=prev"
	}
	fmt.Fprintf(i.out, "\n'doc N' or 'doc <slug>' for details%s\n\n", navHint)
}

// handleDoc selects a document by 1-based index into the document-list page
// or by literal slug, then prints its details.
func (i *Interpreter) handleDoc(ctx context.Context, arg string) {
	slug := arg
	if n, err := strconv.Atoi(arg); err == nil {
		slugs := i.sess.DocCursor.Slugs
		if len(slugs) == 0 {
			fmt.Fprintf(i.out, "Use 'docs' first to list documents.\n\n")
			return
		}
		if n < 1 || n > len(slugs) {
			fmt.Fprintf(i.out, "Invalid index. Use 1-%d.\n\n", len(slugs))
			return
		}
		slug = slugs[n-1]
	}

	doc, err := i.gw.GetDocument(ctx, slug)
	if err != nil {
		i.printError(err)
		return
	}

	i.sess.CurrentDoc = doc.Slug

	fmt.Fprintf(i.out, "\n%s\n", render.Bold.Render(doc.Title))
	fmt.Fprintln(i.out, render.Rule(50))
	fmt.Fprintf(i.out, "Slug:    %s\n", render.Cyan.Render(doc.Slug))
	fmt.Fprintf(i.out, "Pages:   %d\n", doc.TotalPages)
	if doc.SourceFile != "" {
		fmt.Fprintf(i.out, "Source:  %s\n", doc.SourceFile)
	}

	total := 0
	for _, c := range doc.ElementCounts {
		total += c
	}
	if total > 0 {
		fmt.Fprintf(i.out, "\n%s\n", render.Bold.Render("Elements:"))
		types := make([]string, 0, len(doc.ElementCounts))
		for t := range doc.ElementCounts {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			if doc.ElementCounts[t] > 0 {
				fmt.Fprintf(i.out, "  %s: %d\n", t, doc.ElementCounts[t])
			}
		}
		fmt.Fprintf(i.out, "\nUse 'figures', 'tables', or 'equations' to browse\n")
	}

	if len(doc.Keywords) > 0 {
		fmt.Fprintf(i.out, "\n%s\n", render.Bold.Render("Keywords:"))
		fmt.Fprintf(i.out, "  %s\n", strings.Join(doc.Keywords, ", "))
	}
	if doc.Summary != "" {
		fmt.Fprintf(i.out, "\n%s\n", render.Bold.Render("Summary:"))
		fmt.Fprintln(i.out, doc.Summary)
	}
	fmt.Fprintln(i.out)
}

// handleElements lists figures/tables/equations. Scope resolution: an "all"
// variant always means the whole selected document; otherwise the current
// page when one is being viewed, else the whole selected document. The server
// has no page-scoped element endpoint, so page scoping fetches a larger
// candidate set and filters client-side.
func (i *Interpreter) handleElements(ctx context.Context, cmd command) {
	var slug string
	pageFilter := 0

	if cmd.all {
		if i.sess.CurrentDoc == "" {
			fmt.Fprintf(i.out, "Use 'doc <slug>' first to select a document.\n\n")
			return
		}
		slug = i.sess.CurrentDoc
	} else if pv := i.sess.PageView; pv != nil {
		slug = pv.Slug
		pageFilter = pv.Page
	} else if i.sess.CurrentDoc != "" {
		slug = i.sess.CurrentDoc
	} else {
		fmt.Fprintf(i.out, "Use 'doc <slug>' or view a page first.\n\n")
		return
	}

	limit := 20
	if cmd.all || pageFilter > 0 {
		limit = 50
	}

	resp, err := i.gw.Search(ctx, api.SearchRequest{
		Query:           "*", // match all; ordering is the server's
		Limit:           limit,
		DocumentSlug:    slug,
		IncludeChunks:   false,
		IncludeElements: true,
		ElementType:     string(cmd.elemType),
	})
	if err != nil {
		i.printError(err)
		return
	}

	results := result.FromAPIList(resp.Results)
	if pageFilter > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.PageNumber == pageFilter {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if len(results) == 0 {
		if pageFilter > 0 {
			fmt.Fprintf(i.out, "No %s on page %d of %s.\n", cmd.plural, pageFilter, slug)
			fmt.Fprintf(i.out, "Use '%s all' to see all %s in document.\n\n", cmd.plural, cmd.plural)
		} else {
			fmt.Fprintf(i.out, "No %s found in %s.\n\n", cmd.plural, slug)
		}
		return
	}

	scope := slug
	if pageFilter > 0 {
		scope = fmt.Sprintf("%s p.%d", slug, pageFilter)
	}
	fmt.Fprintf(i.out, "\n%s in %s (%d found):\n",
		render.Bold.Render(strings.ToUpper(cmd.plural)),
		render.Cyan.Render(scope),
		len(results))
	fmt.Fprintln(i.out, render.Rule(50))

	for n, r := range results {
		label := "(unlabeled)"
		if elem, ok := r.Element(); ok && elem.Label != "" {
			label = elem.Label
		}
		fmt.Fprintf(i.out, "[%s] %s (p.%d)\n",
			render.Yellow.Render(strconv.Itoa(n+1)), label, r.PageNumber)
		fmt.Fprintf(i.out, "    %s\n", render.Dim.Render(render.Preview(r.Content, 60)))
	}

	i.sess.SetSources(results)
	fmt.Fprintf(i.out, "\nUse 'show N' or 'open N' to view.\n\n")
}

// handleSearch runs a semantic search, scoped to the selected document if any.
func (i *Interpreter) handleSearch(ctx context.Context, query string) {
	fmt.Fprintln(i.out, render.Dim.Render("Searching..."))

	resp, err := i.gw.Search(ctx, api.SearchRequest{
		Query:           query,
		Limit:           10,
		DocumentSlug:    i.sess.CurrentDoc,
		IncludeChunks:   true,
		IncludeElements: true,
	})
	if err != nil {
		i.printError(err)
		return
	}

	if len(resp.Results) == 0 {
		fmt.Fprintf(i.out, "No results found.\n\n")
		return
	}

	scope := ""
	if i.sess.CurrentDoc != "" {
		scope = " in " + render.Cyan.Render(i.sess.CurrentDoc)
	}
	fmt.Fprintf(i.out, "\n%s results%s:\n\n",
		render.Green.Render(strconv.Itoa(len(resp.Results))), scope)

	results := result.FromAPIList(resp.Results)
	for n, r := range results {
		fmt.Fprintln(i.out, render.FormatResult(n+1, r, true))
		fmt.Fprintln(i.out)
	}

	i.sess.SetSources(results)

	for _, r := range results {
		if r.IsElement() {
			fmt.Fprintf(i.out, "Use 'show N' or 'open N' to view images.\n\n")
			break
		}
	}
}

// handleAsk sends a natural-language question, scoped to the selected
// document if any, and prints the answer with its sources.
func (i *Interpreter) handleAsk(ctx context.Context, question string) {
	fmt.Fprintln(i.out, render.Dim.Render("Searching..."))

	resp, err := i.gw.Chat(ctx, api.ChatRequest{
		Question:     question,
		Limit:        8,
		DocumentSlug: i.sess.CurrentDoc,
	})
	if err != nil {
		i.printError(err)
		return
	}

	fmt.Fprintf(i.out, "\n%s %s\n\n", render.BlueBold.Render("Assistant:"), resp.Answer)

	sources := result.FromAPIList(resp.Sources)
	i.sess.SetSources(sources)

	if len(sources) == 0 {
		return
	}

	fmt.Fprintf(i.out, "%s (%d):\n", render.Dim.Render("Sources"), len(sources))
	hasElements := false
	for n, r := range sources {
		fmt.Fprintln(i.out, render.FormatSourceLine(n+1, r))
		if r.IsElement() {
			hasElements = true
		}
	}
	if hasElements {
		fmt.Fprintf(i.out, "\nUse 'show N' to view, or 'page <slug> <N>' for full page.\n\n")
	} else {
		fmt.Fprintf(i.out, "\nUse 'page <slug> <N>' to view full page.\n\n")
	}
}
