// Package imagefit computes the character-grid size for rendering a raster
// image in the terminal. Terminal cells are roughly twice as tall as wide, so
// one character row stands in for about two pixel rows of equivalent height.
package imagefit

import (
	"fmt"
	"math"

	"doclib/internal/result"
)

// Terminal describes the character grid available for rendering.
type Terminal struct {
	Cols int
	Rows int
}

// DefaultTerminal is used when the real terminal size cannot be determined
// (piped output, exotic terminals).
var DefaultTerminal = Terminal{Cols: 120, Rows: 40}

// Size is a target character-grid size.
type Size struct {
	Cols int
	Rows int
}

// String formats the size the way chafa's --size flag expects it.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

const (
	// minCols is the absolute column floor for any rendered image.
	minCols = 20
	// cellAspect is the approximate height:width ratio of one terminal cell.
	cellAspect = 2.0
)

// minRows returns the row floor for an element type. Tables need vertical
// space to stay readable; equations are typically short and wide.
func minRows(t result.ElementType) int {
	switch t {
	case result.ElementTable:
		return 15
	case result.ElementEquation:
		return 6
	default:
		return 8
	}
}

// usable returns the drawable area after reserving margin for surrounding
// text and borders.
func usable(term Terminal) (maxCols, maxRows int) {
	maxCols = term.Cols - 4
	if maxCols < 40 {
		maxCols = 40
	}
	maxRows = term.Rows - 8
	if maxRows < 20 {
		maxRows = 20
	}
	return maxCols, maxRows
}

// Plan fits an image of the given pixel dimensions into the terminal grid,
// preserving aspect ratio. Pass width/height 0 when dimensions are unknown;
// unknown dimensions fall back to per-type defaults capped to the terminal.
func Plan(width, height int, elemType result.ElementType, term Terminal) Size {
	maxCols, maxRows := usable(term)

	if width <= 0 || height <= 0 {
		return fallback(elemType, maxCols, maxRows)
	}

	aspect := float64(width) / float64(height)

	// Fill the available width first, then re-derive from height if the
	// result would overflow vertically.
	cols := maxCols
	rows := int(math.Ceil(float64(cols) / aspect / cellAspect))
	if rows > maxRows {
		rows = maxRows
		cols = int(math.Ceil(float64(rows) * aspect * cellAspect))
	}

	if cols < minCols {
		cols = minCols
	}
	if floor := minRows(elemType); rows < floor {
		rows = floor
	}

	return Size{Cols: cols, Rows: rows}
}

// fallback returns the fixed per-type size used when dimensions are unknown.
func fallback(elemType result.ElementType, maxCols, maxRows int) Size {
	switch elemType {
	case result.ElementEquation:
		return Size{Cols: min(maxCols, 100), Rows: 12}
	case result.ElementTable:
		return Size{Cols: min(maxCols, 100), Rows: min(maxRows, 40)}
	default:
		return Size{Cols: min(maxCols, 80), Rows: min(maxRows, 35)}
	}
}
