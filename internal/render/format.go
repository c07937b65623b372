package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"doclib/internal/result"
)

// Preview truncates content to the given display width, appending "..."
// when anything was cut. Width is measured in terminal cells, not bytes.
func Preview(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// FormatResult renders one search result as a numbered multi-line entry.
// Verbose mode appends a dimmed content preview.
func FormatResult(i int, r result.Result, verbose bool) string {
	var lines []string

	if elem, ok := r.Element(); ok {
		label := elem.Label
		if label == "" {
			label = "(unlabeled)"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s %s",
			Yellow.Render(strconv.Itoa(i)),
			Cyan.Render(strings.ToUpper(string(elem.Type))),
			label))
	} else {
		chunk, _ := r.Chunk()
		lines = append(lines, fmt.Sprintf("[%s] TEXT chunk %d",
			Yellow.Render(strconv.Itoa(i)), chunk.Index))
	}

	lines = append(lines, fmt.Sprintf("    %s p.%d | %.0f%%",
		Dim.Render(r.DocumentTitle), r.PageNumber, r.Score))

	if verbose && r.Content != "" {
		lines = append(lines, "    "+Dim.Render(Preview(r.Content, 200)))
	}

	return strings.Join(lines, "\n")
}

// FormatSources renders the compact one-line-per-source listing used by the
// 'sources' command.
func FormatSources(sources []result.Result) string {
	if len(sources) == 0 {
		return "No sources available."
	}

	lines := make([]string, 0, len(sources))
	for i, r := range sources {
		if elem, ok := r.Element(); ok {
			lines = append(lines, fmt.Sprintf("[%s:%d] %s %s | %s p.%d | %.0f%%",
				r.Tag(), i+1,
				strings.ToUpper(string(elem.Type)), elem.Label,
				r.DocumentTitle, r.PageNumber, r.Score))
		} else {
			lines = append(lines, fmt.Sprintf("[%s:%d] TEXT chunk | %s p.%d | %.0f%%",
				r.Tag(), i+1,
				r.DocumentTitle, r.PageNumber, r.Score))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatSourceLine renders one answer-source line as printed after an ask.
func FormatSourceLine(i int, r result.Result) string {
	var typeStr, label string
	if elem, ok := r.Element(); ok {
		typeStr = strings.ToUpper(string(elem.Type))
		if typeStr == "" {
			typeStr = "ELEMENT"
		}
		label = elem.Label
	} else {
		chunk, _ := r.Chunk()
		typeStr = "CHUNK"
		label = fmt.Sprintf("#%d", chunk.Index+1)
	}
	return fmt.Sprintf("  [%s] %s %s - %s p.%d",
		Yellow.Render(strconv.Itoa(i)),
		Cyan.Render(typeStr),
		label,
		Dim.Render(r.DocumentSlug),
		r.PageNumber)
}
