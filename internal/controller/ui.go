// Package controller provides the presentation implementations for the unic
// CLI: plain console output and a TTY review prompt.
package controller

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"unic.dev/pkg/unic/internal/domain"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boldStyle = lipgloss.NewStyle().Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)
)

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI picks the review-prompt implementation for the environment: the
// Bubble Tea prompt on a terminal, a plain line loop otherwise.
func NewUI(cmd *cobra.Command, tty bool) domain.UI {
	if tty {
		return NewReviewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}
