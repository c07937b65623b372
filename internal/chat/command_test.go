package chat

import (
	"strings"
	"testing"

	"doclib/internal/result"
)

func TestParse_SimpleTokens(t *testing.T) {
	tests := []struct {
		input string
		want  commandKind
	}{
		{"quit", cmdQuit},
		{"exit", cmdQuit},
		{"q", cmdQuit},
		{"QUIT", cmdQuit},
		{"help", cmdHelp},
		{"?", cmdHelp},
		{"sources", cmdSources},
		{"docs", cmdDocs},
		{"next", cmdNext},
		{"n", cmdNext},
		{"prev", cmdPrev},
		{"p", cmdPrev},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Parse(tt.input); got.kind != tt.want {
				t.Errorf("Parse(%q).kind = %d, want %d", tt.input, got.kind, tt.want)
			}
		})
	}
}

func TestParse_Elements(t *testing.T) {
	tests := []struct {
		input    string
		elemType result.ElementType
		all      bool
	}{
		{"figures", result.ElementFigure, false},
		{"tables", result.ElementTable, false},
		{"equations", result.ElementEquation, false},
		{"figures all", result.ElementFigure, true},
		{"TABLES ALL", result.ElementTable, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if got.kind != cmdElements {
				t.Fatalf("kind = %d, want cmdElements", got.kind)
			}
			if got.elemType != tt.elemType || got.all != tt.all {
				t.Errorf("got type=%q all=%v, want type=%q all=%v",
					got.elemType, got.all, tt.elemType, tt.all)
			}
		})
	}
}

func TestParse_ShowAndOpenForms(t *testing.T) {
	got := Parse("show 1,2,3")
	if got.kind != cmdShow || got.arg != "1,2,3" {
		t.Errorf("show by index parsed as kind=%d arg=%q", got.kind, got.arg)
	}

	got = Parse("show page 55")
	if got.kind != cmdShowPage || got.slug != "" || got.page != 55 {
		t.Errorf("show page N parsed as kind=%d slug=%q page=%d", got.kind, got.slug, got.page)
	}

	got = Parse("show page usgs_snyder 55")
	if got.kind != cmdShowPage || got.slug != "usgs_snyder" || got.page != 55 {
		t.Errorf("show page slug N parsed as kind=%d slug=%q page=%d", got.kind, got.slug, got.page)
	}

	got = Parse("open page 7")
	if got.kind != cmdOpenPage || got.page != 7 {
		t.Errorf("open page N parsed as kind=%d page=%d", got.kind, got.page)
	}

	got = Parse("open 2")
	if got.kind != cmdOpen || got.arg != "2" {
		t.Errorf("open by index parsed as kind=%d arg=%q", got.kind, got.arg)
	}

	// Malformed page specs get a usage hint, not a lookup.
	for _, input := range []string{"show page", "show page zero.5", "page a b c", "page -3"} {
		got = Parse(input)
		if got.kind != cmdUsage {
			t.Errorf("Parse(%q).kind = %d, want cmdUsage", input, got.kind)
		}
	}
}

func TestParse_PageForms(t *testing.T) {
	got := Parse("page 55")
	if got.kind != cmdPage || got.slug != "" || got.page != 55 {
		t.Errorf("page N parsed as kind=%d slug=%q page=%d", got.kind, got.slug, got.page)
	}
	got = Parse("page usgs_snyder 55")
	if got.kind != cmdPage || got.slug != "usgs_snyder" || got.page != 55 {
		t.Errorf("page slug N parsed as kind=%d slug=%q page=%d", got.kind, got.slug, got.page)
	}
}

func TestParse_SearchAndDoc(t *testing.T) {
	got := Parse("search mercator projection")
	if got.kind != cmdSearch || got.arg != "mercator projection" {
		t.Errorf("search parsed as kind=%d arg=%q", got.kind, got.arg)
	}

	got = Parse("doc usgs_snyder")
	if got.kind != cmdDoc || got.arg != "usgs_snyder" {
		t.Errorf("doc parsed as kind=%d arg=%q", got.kind, got.arg)
	}

	// A verb followed by only whitespace trims down to the bare verb and
	// reads as a question, same as the bare verb itself.
	for _, input := range []string{"search   ", "doc  "} {
		got := Parse(input)
		if got.kind != cmdAsk {
			t.Errorf("Parse(%q).kind = %d, want cmdAsk", input, got.kind)
		}
		if want := strings.TrimSpace(input); got.arg != want {
			t.Errorf("Parse(%q).arg = %q, want %q", input, got.arg, want)
		}
	}
}

func TestParse_FallsBackToAsk(t *testing.T) {
	for _, input := range []string{
		"What is the Mercator projection?",
		"show", // bare verb with no argument reads as a question
		"pages of history",
	} {
		got := Parse(input)
		if got.kind != cmdAsk {
			t.Errorf("Parse(%q).kind = %d, want cmdAsk", input, got.kind)
		}
		if got.arg != input {
			t.Errorf("Parse(%q).arg = %q, want full input", input, got.arg)
		}
	}
}

func TestParseIndexTokens(t *testing.T) {
	tokens := parseIndexTokens("1, 3 5,abc,0")
	want := []struct {
		raw string
		n   int
		ok  bool
	}{
		{"1", 1, true},
		{"3", 3, true},
		{"5", 5, true},
		{"abc", 0, false},
		{"0", 0, false},
	}
	if len(tokens) != len(want) {
		t.Fatalf("len = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].raw != w.raw || tokens[i].ok != w.ok {
			t.Errorf("token %d = %+v, want raw=%q ok=%v", i, tokens[i], w.raw, w.ok)
		}
		if w.ok && tokens[i].n != w.n {
			t.Errorf("token %d n = %d, want %d", i, tokens[i].n, w.n)
		}
	}

	if got := parseIndexTokens("  ,  "); len(got) != 0 {
		t.Errorf("blank list should produce no tokens, got %d", len(got))
	}
}
