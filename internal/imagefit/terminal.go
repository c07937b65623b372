package imagefit

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminal returns the current character grid of stdout, or
// DefaultTerminal when stdout is not a terminal.
func DetectTerminal() Terminal {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultTerminal
	}
	return Terminal{Cols: cols, Rows: rows}
}
