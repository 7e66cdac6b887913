// Package render formats diagnostics and syntax trees for terminal
// output: a source-context diagnostic formatter with a caret marker,
// and an indented tree/S-expression dump of a red syntax tree.
package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// terminalWidth returns the current terminal column width for stderr,
// or fallback when stderr is not a TTY or the size cannot be read.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Styles holds every Lipgloss renderer used to format diagnostics and
// tree dumps.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Location   lipgloss.Style
	DiagID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	Kind    lipgloss.Style
	Missing lipgloss.Style
	Token   lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds a Styles with ANSI colors, or a plain pass-through
// set when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		DiagID:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Missing: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true),
		Token:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		Location: plain, DiagID: plain, Message: plain, SourceLine: plain, Caret: plain,
		Kind: plain, Missing: plain, Token: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled decides whether color should be used for writer under
// mode "auto" (default), "always", or "never". Auto mode is disabled by
// the NO_COLOR convention (https://no-color.org/) and by a non-TTY
// writer.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
