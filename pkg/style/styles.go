// Package style centralizes terminal styling for annix output. Styles
// degrade to plain text automatically when stdout is not a terminal.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Base styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Package listing styles
var (
	PackageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	VersionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// AutoDetect disables coloring when stdout is not a terminal
func AutoDetect() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Bold returns the string formatted as bold when stdout is a terminal
func Bold(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// TerminalWidth returns the current terminal width in columns
func TerminalWidth() int {
	return pterm.GetTerminalWidth()
}

// Wrap renders s wrapped to the given width with every line indented by
// indent spaces. A non-positive width disables wrapping.
func Wrap(s string, width, indent int) string {
	st := lipgloss.NewStyle().PaddingLeft(indent)
	if width > 0 {
		st = st.Width(width)
	}
	return st.Render(s)
}
