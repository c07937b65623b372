// Package chat implements the interactive session: the state carried across
// a REPL run and the interpreter that resolves each input line against it.
package chat

import "doclib/internal/result"

// PageView records the page most recently fetched, for next/prev navigation
// and page-scoped element browsing.
type PageView struct {
	Slug       string
	Page       int
	TotalPages int
}

// DocCursor tracks pagination through the document-list browser.
// Page 0 means the list has not been browsed yet.
type DocCursor struct {
	Page       int
	TotalPages int
	Slugs      []string // slugs on the current page, in display order
}

// Session is the mutable context of one interactive run. It is owned
// exclusively by the interpreter loop; a failed server call never mutates it,
// so it always reflects the last successful interaction.
type Session struct {
	// CurrentDoc is the selected document slug; empty means none.
	CurrentDoc string
	// PageView is the page currently being viewed; nil means none.
	PageView *PageView
	// Sources is the most recent result set (search, ask sources, or
	// element listing). Each producing call replaces it wholesale.
	Sources []result.Result
	// DocCursor is the document-list pagination state.
	DocCursor DocCursor
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// SetPageView records a successfully fetched page and selects its document.
func (s *Session) SetPageView(slug string, page, totalPages int) {
	s.PageView = &PageView{Slug: slug, Page: page, TotalPages: totalPages}
	s.CurrentDoc = slug
}

// SetSources replaces the current result set.
func (s *Session) SetSources(results []result.Result) {
	s.Sources = results
}

// SetDocCursor records a successfully fetched document-list page.
func (s *Session) SetDocCursor(page, totalPages int, slugs []string) {
	s.DocCursor = DocCursor{Page: page, TotalPages: totalPages, Slugs: slugs}
}
