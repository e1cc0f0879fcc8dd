// Package style holds the colors and icons shared by the CLI and the log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Color is a palette entry.
type Color = lipgloss.Color

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Heading renders text in the accent color.
func Heading(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Iris).Render(text)
}

// Muted renders text in the secondary color.
func Muted(text string) string {
	return lipgloss.NewStyle().Foreground(Slate).Render(text)
}
