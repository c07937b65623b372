package imagefit

import (
	"math"
	"testing"

	"doclib/internal/result"
)

var testTerm = Terminal{Cols: 120, Rows: 40}

func TestPlan_WideImageFillsWidth(t *testing.T) {
	// 1600x400: aspect 4.0. maxCols=116, rows=ceil(116/4/2)=15.
	size := Plan(1600, 400, result.ElementFigure, testTerm)
	if size.Cols != 116 {
		t.Errorf("cols = %d, want 116", size.Cols)
	}
	if size.Rows != 15 {
		t.Errorf("rows = %d, want 15", size.Rows)
	}
}

func TestPlan_TallImageRederivesFromHeight(t *testing.T) {
	// 400x1600: aspect 0.25. Width-first gives rows=232 > maxRows=32,
	// so rows=32, cols=ceil(32*0.25*2)=16, raised to the column floor 20.
	size := Plan(400, 1600, result.ElementFigure, testTerm)
	if size.Rows != 32 {
		t.Errorf("rows = %d, want 32", size.Rows)
	}
	if size.Cols != 20 {
		t.Errorf("cols = %d, want floor 20", size.Cols)
	}
}

func TestPlan_PreservesAspectRatio(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"landscape 3:2", 1500, 1000},
		{"landscape 16:9", 1920, 1080},
		{"square", 1000, 1000},
		{"mild portrait", 900, 1100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := Plan(tt.width, tt.height, result.ElementFigure, testTerm)
			got := float64(size.Cols) / (2.0 * float64(size.Rows))
			want := float64(tt.width) / float64(tt.height)
			// One rounding step: a single row or column of slack.
			tolerance := want/float64(size.Rows) + want/float64(size.Cols)
			if math.Abs(got-want) > tolerance {
				t.Errorf("cols/(2*rows) = %.3f, want %.3f within %.3f", got, want, tolerance)
			}
		})
	}
}

func TestPlan_Floors(t *testing.T) {
	tests := []struct {
		name     string
		elemType result.ElementType
		wantRows int
	}{
		{"table floor", result.ElementTable, 15},
		{"equation floor", result.ElementEquation, 6},
		{"figure floor", result.ElementFigure, 8},
		{"chart floor", result.ElementChart, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Extremely wide strip would otherwise collapse to ~1 row.
			size := Plan(4000, 40, tt.elemType, testTerm)
			if size.Rows < tt.wantRows {
				t.Errorf("rows = %d, want >= %d", size.Rows, tt.wantRows)
			}
			if size.Cols < 20 {
				t.Errorf("cols = %d, want >= 20", size.Cols)
			}
		})
	}
}

func TestPlan_UnknownDimensionFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		elemType result.ElementType
		want     Size
	}{
		{"equation", result.ElementEquation, Size{Cols: 100, Rows: 12}},
		{"table", result.ElementTable, Size{Cols: 100, Rows: 32}},
		{"figure", result.ElementFigure, Size{Cols: 80, Rows: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := Plan(0, 0, tt.elemType, testTerm)
			if size != tt.want {
				t.Errorf("Plan = %v, want %v", size, tt.want)
			}
		})
	}
}

func TestPlan_SmallTerminalUsesMinimumArea(t *testing.T) {
	tiny := Terminal{Cols: 30, Rows: 20}
	// Usable area is clamped to 40x20 regardless of how small the terminal is.
	size := Plan(0, 0, result.ElementFigure, tiny)
	if size.Cols != 40 {
		t.Errorf("cols = %d, want 40", size.Cols)
	}
	if size.Rows != 20 {
		t.Errorf("rows = %d, want 20", size.Rows)
	}
}

func TestSizeString(t *testing.T) {
	s := Size{Cols: 80, Rows: 40}
	if got := s.String(); got != "80x40" {
		t.Errorf("String = %q, want %q", got, "80x40")
	}
}
