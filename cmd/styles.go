package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Common styles used across commands
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	fatalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// styled reports whether w is an interactive terminal. Styling is skipped
// for pipes, files and test buffers.
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// severityStyle colours a severity value.
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "fatal":
		return fatalStyle
	case "high":
		return highStyle
	case "moderate":
		return warningStyle
	case "low":
		return lowStyle
	default:
		return faintStyle
	}
}
