// Package render formats results, documents, and status output for the
// terminal. All color goes through the lipgloss styles defined here so the
// rest of the client never touches ANSI directly.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Bold   = lipgloss.NewStyle().Bold(true)
	Cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	Yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	Blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	Dim    = lipgloss.NewStyle().Faint(true)

	GreenBold = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	RedBold   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	BlueBold  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
)

// Rule returns a horizontal separator of the given width.
func Rule(width int) string {
	return strings.Repeat("=", width)
}
