package render

import (
	"strings"
	"testing"

	"doclib/internal/result"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short passes through", "hello", 10, "hello"},
		{"exact width passes through", "hello", 5, "hello"},
		{"long gets ellipsis", "hello world", 8, "hello..."},
		{"newlines flattened", "a\nb\nc", 10, "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in, tt.width); got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPreview_WideRunes(t *testing.T) {
	// CJK runes are two cells wide; truncation must count cells, not runes.
	got := Preview("漢字漢字漢字", 7)
	if strings.HasSuffix(got, "漢字漢字漢字") {
		t.Errorf("Preview should have truncated, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview should append ellipsis, got %q", got)
	}
}

func TestFormatResult_Element(t *testing.T) {
	r := result.NewElement(1, 92, "A figure showing map distortion", "usgs_snyder", "Map Projections", 55,
		result.Element{Type: result.ElementFigure, Label: "Figure 5"})

	got := FormatResult(3, r, true)
	for _, want := range []string{"[3]", "FIGURE", "Figure 5", "Map Projections", "p.55", "92%", "map distortion"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatResult missing %q in %q", want, got)
		}
	}
}

func TestFormatResult_ChunkNonVerbose(t *testing.T) {
	r := result.NewChunk(2, 80, "some passage text", "doc", "Title", 10, 4)

	got := FormatResult(1, r, false)
	if !strings.Contains(got, "TEXT chunk 4") {
		t.Errorf("FormatResult missing chunk tag in %q", got)
	}
	if strings.Contains(got, "some passage text") {
		t.Errorf("non-verbose FormatResult should omit content, got %q", got)
	}
}

func TestFormatResult_UnlabeledElement(t *testing.T) {
	r := result.NewElement(1, 50, "", "doc", "Title", 1,
		result.Element{Type: result.ElementTable})

	if got := FormatResult(1, r, false); !strings.Contains(got, "(unlabeled)") {
		t.Errorf("FormatResult = %q, want (unlabeled) placeholder", got)
	}
}

func TestFormatSources(t *testing.T) {
	sources := []result.Result{
		result.NewElement(1, 90, "", "doc_a", "Title A", 12,
			result.Element{Type: result.ElementEquation, Label: "Eq. 7"}),
		result.NewChunk(2, 70, "text", "doc_b", "Title B", 3, 0),
	}

	got := FormatSources(sources)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("FormatSources emitted %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "[eq:1]") || !strings.Contains(lines[0], "EQUATION Eq. 7") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[t:2]") || !strings.Contains(lines[1], "TEXT chunk") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatSources_Empty(t *testing.T) {
	if got := FormatSources(nil); got != "No sources available." {
		t.Errorf("FormatSources(nil) = %q", got)
	}
}

func TestFormatSourceLine(t *testing.T) {
	chunk := result.NewChunk(1, 80, "text", "usgs_snyder", "Title", 38, 4)
	got := FormatSourceLine(2, chunk)
	// Chunk labels are 1-based for display.
	for _, want := range []string{"[2]", "CHUNK", "#5", "usgs_snyder", "p.38"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatSourceLine missing %q in %q", want, got)
		}
	}

	elem := result.NewElement(1, 90, "", "doc", "Title", 7,
		result.Element{Type: result.ElementFigure, Label: "Figure 2"})
	got = FormatSourceLine(1, elem)
	if !strings.Contains(got, "FIGURE") || !strings.Contains(got, "Figure 2") {
		t.Errorf("FormatSourceLine = %q", got)
	}
}
