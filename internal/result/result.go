// Package result normalizes the server's raw retrieval records into a
// kind-checked model. Ordering and scoring are owned by the server; this
// package never re-sorts or filters a response.
package result

import (
	"strings"

	"doclib/internal/api"
)

// Kind distinguishes the two retrieval record variants.
type Kind int

const (
	// KindTextChunk is a plain text passage from a document.
	KindTextChunk Kind = iota
	// KindElement is a visual element extracted from a page.
	KindElement
)

// ElementType names the visual element categories the server extracts.
type ElementType string

const (
	ElementFigure   ElementType = "figure"
	ElementTable    ElementType = "table"
	ElementEquation ElementType = "equation"
	ElementChart    ElementType = "chart"
	ElementDiagram  ElementType = "diagram"
)

// Chunk holds the attributes specific to a text-chunk result.
type Chunk struct {
	Index int // position within the document
}

// Element holds the attributes specific to a visual-element result.
// Width and Height are 0 when the server did not report dimensions.
type Element struct {
	Type        ElementType
	Label       string
	CropRef     string // raw crop image, server-relative
	RenderedRef string // clean rendering; only meaningful for equations
	Width       int
	Height      int
}

// Result is one retrieved item. Exactly one of Chunk or Element is non-nil,
// matching Kind; construct only through NewChunk, NewElement, or FromAPI.
type Result struct {
	ID            int64
	Score         float64 // relevance percentage, 0-100
	Content       string
	DocumentSlug  string
	DocumentTitle string
	PageNumber    int

	kind    Kind
	chunk   *Chunk
	element *Element
}

// NewChunk constructs a text-chunk result.
func NewChunk(id int64, score float64, content, slug, title string, page, chunkIndex int) Result {
	return Result{
		ID:            id,
		Score:         score,
		Content:       content,
		DocumentSlug:  slug,
		DocumentTitle: title,
		PageNumber:    page,
		kind:          KindTextChunk,
		chunk:         &Chunk{Index: chunkIndex},
	}
}

// NewElement constructs a visual-element result.
func NewElement(id int64, score float64, content, slug, title string, page int, elem Element) Result {
	return Result{
		ID:            id,
		Score:         score,
		Content:       content,
		DocumentSlug:  slug,
		DocumentTitle: title,
		PageNumber:    page,
		kind:          KindElement,
		element:       &elem,
	}
}

// Kind returns the variant of this result.
func (r Result) Kind() Kind {
	return r.kind
}

// IsElement reports whether this result is a visual element.
func (r Result) IsElement() bool {
	return r.kind == KindElement
}

// Chunk returns the chunk attributes, or false for element results.
func (r Result) Chunk() (Chunk, bool) {
	if r.chunk == nil {
		return Chunk{}, false
	}
	return *r.chunk, true
}

// Element returns the element attributes, or false for chunk results.
func (r Result) Element() (Element, bool) {
	if r.element == nil {
		return Element{}, false
	}
	return *r.element, true
}

// BestImageRef returns the preferred image reference for display.
// Equations prefer the clean LaTeX rendering over the raw crop; every other
// element type uses whichever reference is present. Text chunks have none.
func (r Result) BestImageRef() (string, bool) {
	if r.element == nil {
		return "", false
	}
	e := r.element
	if e.Type == ElementEquation && e.RenderedRef != "" {
		return e.RenderedRef, true
	}
	if e.CropRef != "" {
		return e.CropRef, true
	}
	if e.RenderedRef != "" {
		return e.RenderedRef, true
	}
	return "", false
}

// FromAPI converts one raw server record.
func FromAPI(raw api.SearchResult) Result {
	if strings.EqualFold(raw.SourceType, "element") {
		elem := Element{
			Type:        ElementType(strings.ToLower(raw.ElementType)),
			Label:       raw.ElementLabel,
			CropRef:     raw.CropPath,
			RenderedRef: raw.RenderedPath,
		}
		if raw.ImageWidth != nil {
			elem.Width = *raw.ImageWidth
		}
		if raw.ImageHeight != nil {
			elem.Height = *raw.ImageHeight
		}
		return NewElement(raw.ID, raw.ScorePct, raw.Content, raw.DocumentSlug, raw.DocumentTitle, raw.PageNumber, elem)
	}

	chunkIndex := 0
	if raw.ChunkIndex != nil {
		chunkIndex = *raw.ChunkIndex
	}
	return NewChunk(raw.ID, raw.ScorePct, raw.Content, raw.DocumentSlug, raw.DocumentTitle, raw.PageNumber, chunkIndex)
}

// FromAPIList converts a full response slice, preserving server order.
func FromAPIList(raw []api.SearchResult) []Result {
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		out = append(out, FromAPI(r))
	}
	return out
}

// Tag returns the short source tag used in compact listings:
// f/tb/eq/ch/d for elements, t for text chunks.
func (r Result) Tag() string {
	if r.element == nil {
		return "t"
	}
	switch r.element.Type {
	case ElementFigure:
		return "f"
	case ElementTable:
		return "tb"
	case ElementEquation:
		return "eq"
	case ElementChart:
		return "ch"
	case ElementDiagram:
		return "d"
	default:
		return "e"
	}
}
