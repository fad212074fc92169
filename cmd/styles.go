package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Styles for CLI output.
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")) // Purple

	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")) // Green

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	styleLabel = lipgloss.NewStyle().
			Bold(true).
			Width(10)
)

// useColor reports whether stdout wants styled output.
func useColor() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// termWidth returns the terminal width, defaulting to 80.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func renderTitle(s string) string {
	if !useColor() {
		return s
	}
	return styleTitle.MaxWidth(termWidth()).Render(s)
}

func renderOK(s string) string {
	if !useColor() {
		return s
	}
	return styleOK.MaxWidth(termWidth()).Render(s)
}

func renderDim(s string) string {
	if !useColor() {
		return s
	}
	return styleDim.MaxWidth(termWidth()).Render(s)
}

func renderRow(label, value string) string {
	if !useColor() {
		return fmt.Sprintf("  %-10s %s", label, value)
	}
	return "  " + styleLabel.Render(label) + styleDim.Render(value)
}
